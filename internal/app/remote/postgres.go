package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/app/models"
	"github.com/pradipta/sijadwal/internal/pkg/dberrors"
)

// PostgresStore implements Store on a local Postgres database, for
// deployments that no longer proxy the legacy endpoint. The lecturer_ids
// column stays JSON text to match what the legacy schema stored, so data
// migrated from the old backend loads unchanged.
type PostgresStore struct {
	db     *pgxpool.Pool
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(db *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger,
	}
}

var scheduleColumns = []string{"id", "course_id", "room_id", "class_name", "day", "time_slot", "lecturer_ids", "pjmk_lecturer_id", "is_locked"}

// FetchAll loads the schedule and every reference table in one call.
func (s *PostgresStore) FetchAll(ctx context.Context) (models.Dataset, error) {
	var data models.Dataset
	var err error

	if data.Schedule, err = s.fetchSchedule(ctx); err != nil {
		return models.Dataset{}, err
	}
	if data.Courses, err = s.fetchCourses(ctx); err != nil {
		return models.Dataset{}, err
	}
	if data.Rooms, err = s.fetchRooms(ctx); err != nil {
		return models.Dataset{}, err
	}
	if data.Lecturers, err = s.fetchLecturers(ctx); err != nil {
		return models.Dataset{}, err
	}
	if data.Classes, err = s.fetchClasses(ctx); err != nil {
		return models.Dataset{}, err
	}
	return data, nil
}

func (s *PostgresStore) fetchSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	sql, args, err := s.sb.Select(scheduleColumns...).
		From("schedule_entries").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying schedule entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ScheduleEntry, 0)
	for rows.Next() {
		var entry models.ScheduleEntry
		var lecturerIDs string
		var pjmk *string
		if err := rows.Scan(&entry.ID, &entry.CourseID, &entry.RoomID, &entry.ClassName, &entry.Day, &entry.TimeSlot, &lecturerIDs, &pjmk, &entry.IsLocked); err != nil {
			return nil, fmt.Errorf("error scanning schedule entry: %w", err)
		}
		entry.LecturerIDs = decodeLecturerIDs(json.RawMessage(lecturerIDs))
		if pjmk != nil {
			entry.PJMKLecturerID = *pjmk
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) fetchCourses(ctx context.Context) ([]models.Course, error) {
	sql, args, err := s.sb.Select("id", "code", "name", "sks", "semester").
		From("courses").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build courses query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Credits, &course.Semester); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *PostgresStore) fetchRooms(ctx context.Context) ([]models.Room, error) {
	sql, args, err := s.sb.Select("id", "name", "capacity").
		From("rooms").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rooms query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]models.Room, 0)
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity); err != nil {
			return nil, fmt.Errorf("error scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *PostgresStore) fetchLecturers(ctx context.Context) ([]models.Lecturer, error) {
	sql, args, err := s.sb.Select("id", "nidn", "name").
		From("lecturers").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lecturers query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lecturers: %w", err)
	}
	defer rows.Close()

	lecturers := make([]models.Lecturer, 0)
	for rows.Next() {
		var lecturer models.Lecturer
		var nidn *string
		if err := rows.Scan(&lecturer.ID, &nidn, &lecturer.Name); err != nil {
			return nil, fmt.Errorf("error scanning lecturer: %w", err)
		}
		if nidn != nil {
			lecturer.NIDN = *nidn
		}
		lecturers = append(lecturers, lecturer)
	}
	return lecturers, rows.Err()
}

func (s *PostgresStore) fetchClasses(ctx context.Context) ([]models.ClassGroup, error) {
	sql, args, err := s.sb.Select("id", "name").
		From("class_groups").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class groups query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying class groups: %w", err)
	}
	defer rows.Close()

	classes := make([]models.ClassGroup, 0)
	for rows.Next() {
		var class models.ClassGroup
		if err := rows.Scan(&class.ID, &class.Name); err != nil {
			return nil, fmt.Errorf("error scanning class group: %w", err)
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// CreateEntry inserts a single schedule entry.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry models.ScheduleEntry) error {
	lecturerIDs, err := encodeLecturerIDs(entry.LecturerIDs)
	if err != nil {
		return err
	}

	sql, args, err := s.sb.Insert("schedule_entries").
		Columns(scheduleColumns...).
		Values(entry.ID, entry.CourseID, entry.RoomID, entry.ClassName, entry.Day, entry.TimeSlot, lecturerIDs, nullable(entry.PJMKLecturerID), entry.IsLocked).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create entry query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("schedule entry %s already exists: %w", entry.ID, err)
		}
		return fmt.Errorf("error creating schedule entry: %w", err)
	}
	return nil
}

// UpdateEntry applies a partial update keyed by id.
func (s *PostgresStore) UpdateEntry(ctx context.Context, patch models.ScheduleEntryPatch) error {
	builder := s.sb.Update("schedule_entries").Where(squirrel.Eq{"id": patch.ID})
	touched := false

	if patch.CourseID != nil {
		builder = builder.Set("course_id", *patch.CourseID)
		touched = true
	}
	if patch.RoomID != nil {
		builder = builder.Set("room_id", *patch.RoomID)
		touched = true
	}
	if patch.ClassName != nil {
		builder = builder.Set("class_name", *patch.ClassName)
		touched = true
	}
	if patch.Day != nil {
		builder = builder.Set("day", *patch.Day)
		touched = true
	}
	if patch.TimeSlot != nil {
		builder = builder.Set("time_slot", *patch.TimeSlot)
		touched = true
	}
	if patch.LecturerIDs != nil {
		encoded, err := encodeLecturerIDs(*patch.LecturerIDs)
		if err != nil {
			return err
		}
		builder = builder.Set("lecturer_ids", encoded)
		touched = true
	}
	if patch.PJMKLecturerID != nil {
		builder = builder.Set("pjmk_lecturer_id", nullable(*patch.PJMKLecturerID))
		touched = true
	}
	if patch.IsLocked != nil {
		builder = builder.Set("is_locked", *patch.IsLocked)
		touched = true
	}

	if !touched {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update entry query: %w", err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteEntry removes one entry by id. Deleting an id that is already gone
// is not an error; resync semantics make deletes idempotent.
func (s *PostgresStore) DeleteEntry(ctx context.Context, id string) error {
	sql, args, err := s.sb.Delete("schedule_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete entry query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting schedule entry: %w", err)
	}
	return nil
}

// BulkCreateEntries inserts a batch of imported entries in one transaction.
func (s *PostgresStore) BulkCreateEntries(ctx context.Context, entries []models.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting bulk insert transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Warn().Err(err).Msg("bulk insert rollback failed")
		}
	}()

	builder := s.sb.Insert("schedule_entries").Columns(scheduleColumns...)
	for _, entry := range entries {
		lecturerIDs, err := encodeLecturerIDs(entry.LecturerIDs)
		if err != nil {
			return err
		}
		builder = builder.Values(entry.ID, entry.CourseID, entry.RoomID, entry.ClassName, entry.Day, entry.TimeSlot, lecturerIDs, nullable(entry.PJMKLecturerID), entry.IsLocked)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error bulk inserting schedule entries: %w", err)
	}
	return tx.Commit(ctx)
}

// DeleteAllEntries truncates the schedule.
func (s *PostgresStore) DeleteAllEntries(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM schedule_entries"); err != nil {
		return fmt.Errorf("error clearing schedule entries: %w", err)
	}
	return nil
}

// SetLockedAll flips the lock flag on the given entries in one statement.
func (s *PostgresStore) SetLockedAll(ctx context.Context, ids []string, locked bool) error {
	if len(ids) == 0 {
		return nil
	}

	sql, args, err := s.sb.Update("schedule_entries").
		Set("is_locked", locked).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lock update query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating lock flags: %w", err)
	}
	return nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

var _ Store = (*PostgresStore)(nil)
