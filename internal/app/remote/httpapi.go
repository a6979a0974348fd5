package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/app/models"
)

const scheduleTable = "schedule"

// HTTPClient talks to the legacy department endpoint. Every mutation is a
// POST carrying an {action, table, ...} envelope; reads are a single GET
// returning the whole dataset.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPClient creates an HTTPClient for the given base URL.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// wireEntry mirrors the remote schema. The backing table stores
// lecturerIds as text, so the field is a JSON string on the wire, not a
// native array.
type wireEntry struct {
	ID             string `json:"id"`
	CourseID       string `json:"courseId"`
	RoomID         string `json:"roomId"`
	ClassName      string `json:"className"`
	Day            string `json:"day"`
	TimeSlot       string `json:"timeSlot"`
	LecturerIDs    string `json:"lecturerIds"`
	PJMKLecturerID string `json:"pjmkLecturerId,omitempty"`
	IsLocked       bool   `json:"isLocked"`
}

func toWireEntry(entry models.ScheduleEntry) (wireEntry, error) {
	lecturers, err := encodeLecturerIDs(entry.LecturerIDs)
	if err != nil {
		return wireEntry{}, err
	}
	return wireEntry{
		ID:             entry.ID,
		CourseID:       entry.CourseID,
		RoomID:         entry.RoomID,
		ClassName:      entry.ClassName,
		Day:            entry.Day,
		TimeSlot:       entry.TimeSlot,
		LecturerIDs:    lecturers,
		PJMKLecturerID: entry.PJMKLecturerID,
		IsLocked:       entry.IsLocked,
	}, nil
}

func encodeLecturerIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode lecturerIds: %w", err)
	}
	return string(raw), nil
}

// fetchEntry tolerates both encodings of lecturerIds on reads: the text
// column round-trips as a JSON string, but some deployments migrated to a
// native array.
type fetchEntry struct {
	ID             string          `json:"id"`
	CourseID       string          `json:"courseId"`
	RoomID         string          `json:"roomId"`
	ClassName      string          `json:"className"`
	Day            string          `json:"day"`
	TimeSlot       string          `json:"timeSlot"`
	LecturerIDs    json.RawMessage `json:"lecturerIds"`
	PJMKLecturerID string          `json:"pjmkLecturerId"`
	IsLocked       bool            `json:"isLocked"`
}

func (f fetchEntry) toModel() models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:             f.ID,
		CourseID:       f.CourseID,
		RoomID:         f.RoomID,
		ClassName:      f.ClassName,
		Day:            f.Day,
		TimeSlot:       f.TimeSlot,
		LecturerIDs:    decodeLecturerIDs(f.LecturerIDs),
		PJMKLecturerID: f.PJMKLecturerID,
		IsLocked:       f.IsLocked,
	}
}

func decodeLecturerIDs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return []string{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return []string{}
	}
	return ids
}

type fetchAllResponse struct {
	Schedule  []fetchEntry        `json:"schedule"`
	Courses   []models.Course     `json:"courses"`
	Rooms     []models.Room       `json:"rooms"`
	Lecturers []models.Lecturer   `json:"lecturers"`
	Classes   []models.ClassGroup `json:"classes"`
}

// FetchAll retrieves the complete authoritative dataset.
func (c *HTTPClient) FetchAll(ctx context.Context) (models.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return models.Dataset{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("fetch-all request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Dataset{}, fmt.Errorf("fetch-all unexpected status: %d", resp.StatusCode)
	}

	var body fetchAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Dataset{}, fmt.Errorf("failed to decode fetch-all response: %w", err)
	}

	data := models.Dataset{
		Schedule:  make([]models.ScheduleEntry, 0, len(body.Schedule)),
		Courses:   body.Courses,
		Rooms:     body.Rooms,
		Lecturers: body.Lecturers,
		Classes:   body.Classes,
	}
	for _, entry := range body.Schedule {
		data.Schedule = append(data.Schedule, entry.toModel())
	}
	return data, nil
}

type actionEnvelope struct {
	Action string      `json:"action"`
	Table  string      `json:"table"`
	Data   interface{} `json:"data,omitempty"`
	ID     string      `json:"id,omitempty"`
}

func (c *HTTPClient) post(ctx context.Context, envelope actionEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", envelope.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", envelope.Action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s unexpected status: %d", envelope.Action, resp.StatusCode)
	}

	c.logger.Debug().Str("action", envelope.Action).Str("table", envelope.Table).Msg("remote mutation acknowledged")
	return nil
}

// CreateEntry issues an add action for a single entry.
func (c *HTTPClient) CreateEntry(ctx context.Context, entry models.ScheduleEntry) error {
	wire, err := toWireEntry(entry)
	if err != nil {
		return err
	}
	return c.post(ctx, actionEnvelope{Action: "add", Table: scheduleTable, Data: wire})
}

// UpdateEntry issues an update action. The payload is partial but always
// includes the id; lecturerIds keeps its JSON-string wire form.
func (c *HTTPClient) UpdateEntry(ctx context.Context, patch models.ScheduleEntryPatch) error {
	data := map[string]interface{}{"id": patch.ID}
	if patch.CourseID != nil {
		data["courseId"] = *patch.CourseID
	}
	if patch.RoomID != nil {
		data["roomId"] = *patch.RoomID
	}
	if patch.ClassName != nil {
		data["className"] = *patch.ClassName
	}
	if patch.Day != nil {
		data["day"] = *patch.Day
	}
	if patch.TimeSlot != nil {
		data["timeSlot"] = *patch.TimeSlot
	}
	if patch.LecturerIDs != nil {
		encoded, err := encodeLecturerIDs(*patch.LecturerIDs)
		if err != nil {
			return err
		}
		data["lecturerIds"] = encoded
	}
	if patch.PJMKLecturerID != nil {
		data["pjmkLecturerId"] = *patch.PJMKLecturerID
	}
	if patch.IsLocked != nil {
		data["isLocked"] = *patch.IsLocked
	}
	return c.post(ctx, actionEnvelope{Action: "update", Table: scheduleTable, Data: data})
}

// DeleteEntry issues a delete action for one id.
func (c *HTTPClient) DeleteEntry(ctx context.Context, id string) error {
	return c.post(ctx, actionEnvelope{Action: "delete", Table: scheduleTable, ID: id})
}

// BulkCreateEntries issues one bulk_add action carrying every entry.
func (c *HTTPClient) BulkCreateEntries(ctx context.Context, entries []models.ScheduleEntry) error {
	wires := make([]wireEntry, 0, len(entries))
	for _, entry := range entries {
		wire, err := toWireEntry(entry)
		if err != nil {
			return err
		}
		wires = append(wires, wire)
	}
	return c.post(ctx, actionEnvelope{Action: "bulk_add", Table: scheduleTable, Data: wires})
}

// DeleteAllEntries issues a delete_all action for the schedule table.
func (c *HTTPClient) DeleteAllEntries(ctx context.Context) error {
	return c.post(ctx, actionEnvelope{Action: "delete_all", Table: scheduleTable})
}

// SetLockedAll updates the lock flag one record at a time; the action
// protocol has no bulk update.
func (c *HTTPClient) SetLockedAll(ctx context.Context, ids []string, locked bool) error {
	for _, id := range ids {
		patch := models.ScheduleEntryPatch{ID: id, IsLocked: &locked}
		if err := c.UpdateEntry(ctx, patch); err != nil {
			return err
		}
	}
	return nil
}

var _ Store = (*HTTPClient)(nil)
