package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/sijadwal/internal/app/models"
)

type recordedRequest struct {
	method string
	body   map[string]interface{}
}

func newRecordingServer(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method}
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rec.body))
		}
		requests = append(requests, rec)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestFetchAllDecodesBothLecturerEncodings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"schedule": [
				{"id": "e1", "courseId": "c1", "roomId": "r1", "className": "TI-2A", "day": "SENIN", "timeSlot": "07:00-08:40", "lecturerIds": "[\"l1\",\"l2\"]"},
				{"id": "e2", "courseId": "c1", "roomId": "r2", "className": "TI-2B", "day": "SENIN", "timeSlot": "07:00-08:40", "lecturerIds": ["l1"]},
				{"id": "e3", "courseId": "c2", "roomId": "r1", "className": "TI-2A", "day": "SELASA", "timeSlot": "07:00-08:40", "lecturerIds": ""}
			],
			"courses": [{"id": "c1", "code": "IF101", "name": "Algoritma"}],
			"rooms": [{"id": "r1", "name": "Lab 1"}],
			"lecturers": [{"id": "l1", "name": "Budi"}],
			"classes": [{"id": "k1", "name": "TI-2A"}]
		}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())
	data, err := client.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Schedule, 3)
	assert.Equal(t, []string{"l1", "l2"}, data.Schedule[0].LecturerIDs)
	assert.Equal(t, []string{"l1"}, data.Schedule[1].LecturerIDs)
	assert.Empty(t, data.Schedule[2].LecturerIDs)
	assert.Len(t, data.Courses, 1)
	assert.Len(t, data.Rooms, 1)
}

func TestFetchAllBadStatus(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusBadGateway)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	_, err := client.FetchAll(context.Background())
	require.Error(t, err)
}

func TestCreateEntryEnvelope(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	err := client.CreateEntry(context.Background(), models.ScheduleEntry{
		ID:          "e1",
		CourseID:    "c1",
		RoomID:      "r1",
		ClassName:   "TI-2A",
		Day:         models.DaySenin,
		TimeSlot:    "07:00-08:40",
		LecturerIDs: []string{"l1", "l2"},
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	body := (*requests)[0].body
	assert.Equal(t, "add", body["action"])
	assert.Equal(t, "schedule", body["table"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "e1", data["id"])
	// lecturerIds crosses the wire as a JSON string, not an array.
	assert.Equal(t, `["l1","l2"]`, data["lecturerIds"])
}

func TestCreateEntryNilLecturersEncodesEmptyArray(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	err := client.CreateEntry(context.Background(), models.ScheduleEntry{ID: "e1"})
	require.NoError(t, err)

	data := (*requests)[0].body["data"].(map[string]interface{})
	assert.Equal(t, `[]`, data["lecturerIds"])
}

func TestUpdateEntrySendsOnlySetFields(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	room := "r2"
	err := client.UpdateEntry(context.Background(), models.ScheduleEntryPatch{
		ID:     "e1",
		RoomID: &room,
	})
	require.NoError(t, err)

	body := (*requests)[0].body
	assert.Equal(t, "update", body["action"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "e1", data["id"])
	assert.Equal(t, "r2", data["roomId"])
	_, hasDay := data["day"]
	assert.False(t, hasDay)
	_, hasLecturers := data["lecturerIds"]
	assert.False(t, hasLecturers)
}

func TestDeleteEntryEnvelope(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	require.NoError(t, client.DeleteEntry(context.Background(), "e1"))

	body := (*requests)[0].body
	assert.Equal(t, "delete", body["action"])
	assert.Equal(t, "e1", body["id"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestBulkCreateEntriesEnvelope(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	err := client.BulkCreateEntries(context.Background(), []models.ScheduleEntry{
		{ID: "e1"}, {ID: "e2"},
	})
	require.NoError(t, err)

	body := (*requests)[0].body
	assert.Equal(t, "bulk_add", body["action"])
	data := body["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestDeleteAllEntriesEnvelope(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	require.NoError(t, client.DeleteAllEntries(context.Background()))
	assert.Equal(t, "delete_all", (*requests)[0].body["action"])
}

func TestSetLockedAllLoopsPerID(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	require.NoError(t, client.SetLockedAll(context.Background(), []string{"e1", "e2"}, true))

	require.Len(t, *requests, 2)
	for i, id := range []string{"e1", "e2"} {
		body := (*requests)[i].body
		assert.Equal(t, "update", body["action"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, id, data["id"])
		assert.Equal(t, true, data["isLocked"])
	}
}

func TestMutationBadStatus(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusInternalServerError)
	client := NewHTTPClient(srv.URL, srv.Client(), zerolog.Nop())

	err := client.DeleteEntry(context.Background(), "e1")
	require.Error(t, err)
}
