package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/sijadwal/internal/app/models"
)

// fakeStore is an in-memory system of record. Mutations apply to its
// dataset so the forced resync after each mutation reflects them, the way
// the real backend does.
type fakeStore struct {
	mu   sync.Mutex
	data models.Dataset

	fetchErr  error
	createErr error
	updateErr error
	deleteErr error
	bulkErr   error
	clearErr  error
	lockErr   error

	deleteCalls []string
	lockCalls   int
}

func (f *fakeStore) FetchAll(ctx context.Context) (models.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return models.Dataset{}, f.fetchErr
	}
	return f.data.Clone(), nil
}

func (f *fakeStore) CreateEntry(ctx context.Context, entry models.ScheduleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.data.Schedule = append(f.data.Schedule, entry)
	return nil
}

func (f *fakeStore) UpdateEntry(ctx context.Context, patch models.ScheduleEntryPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, entry := range f.data.Schedule {
		if entry.ID == patch.ID {
			f.data.Schedule[i] = patch.Apply(entry)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeStore) DeleteEntry(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.data.Schedule[:0]
	for _, entry := range f.data.Schedule {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	f.data.Schedule = kept
	return nil
}

func (f *fakeStore) BulkCreateEntries(ctx context.Context, entries []models.ScheduleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.data.Schedule = append(f.data.Schedule, entries...)
	return nil
}

func (f *fakeStore) DeleteAllEntries(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.data.Schedule = nil
	return nil
}

func (f *fakeStore) SetLockedAll(ctx context.Context, ids []string, locked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockCalls++
	if f.lockErr != nil {
		return f.lockErr
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range f.data.Schedule {
		if want[f.data.Schedule[i].ID] {
			f.data.Schedule[i].IsLocked = locked
		}
	}
	return nil
}

func referenceData() models.Dataset {
	return models.Dataset{
		Courses: []models.Course{
			{ID: "c1", Code: "IF101", Name: "Algoritma dan Pemrograman"},
			{ID: "c2", Code: "IF202", Name: "Basis Data"},
		},
		Rooms: []models.Room{
			{ID: "r1", Name: "Lab Komputer 1"},
			{ID: "r2", Name: "Ruang 301"},
		},
		Lecturers: []models.Lecturer{
			{ID: "l1", Name: "Dr. Budi Santoso"},
			{ID: "l2", Name: "Siti Rahayu, M.Kom"},
		},
		Classes: []models.ClassGroup{
			{ID: "k1", Name: "TI-2A"},
			{ID: "k2", Name: "TI-2B"},
		},
	}
}

func newTestService(t *testing.T, store *fakeStore) *ScheduleService {
	t.Helper()
	svc := NewScheduleService(store, ScheduleServiceOptions{}, zerolog.Nop())
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func validEntry() models.ScheduleEntry {
	return models.ScheduleEntry{
		CourseID:    "c1",
		RoomID:      "r1",
		ClassName:   "TI-2A",
		Day:         models.DaySenin,
		TimeSlot:    "07:00-08:40",
		LecturerIDs: []string{"l1"},
	}
}

func TestAddAssignsIDAndPersists(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	result, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)
	require.Len(t, result.EntryIDs, 1)
	assert.NotEmpty(t, result.EntryIDs[0])
	assert.Empty(t, result.RemoteError)
	assert.True(t, result.Resynced)

	snap := svc.Snapshot()
	require.Len(t, snap.Schedule, 1)
	assert.Equal(t, result.EntryIDs[0], snap.Schedule[0].ID)
}

func TestAddRejectsValidationFailures(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	cases := map[string]func(*models.ScheduleEntry){
		"missing day":          func(e *models.ScheduleEntry) { e.Day = "" },
		"missing time slot":    func(e *models.ScheduleEntry) { e.TimeSlot = "" },
		"missing course":       func(e *models.ScheduleEntry) { e.CourseID = "" },
		"missing room":         func(e *models.ScheduleEntry) { e.RoomID = "" },
		"missing class":        func(e *models.ScheduleEntry) { e.ClassName = "" },
		"too many lecturers":   func(e *models.ScheduleEntry) { e.LecturerIDs = []string{"l1", "l2", "l3"} },
		"duplicate lecturer":   func(e *models.ScheduleEntry) { e.LecturerIDs = []string{"l1", "l1"} },
		"pjmk not in list":     func(e *models.ScheduleEntry) { e.PJMKLecturerID = "l2" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			entry := validEntry()
			mutate(&entry)
			_, err := svc.Add(context.Background(), entry)
			require.Error(t, err)
		})
	}

	// Nothing reached the store.
	assert.Empty(t, svc.Snapshot().Schedule)
}

func TestAddRejectsConflicts(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	_, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)

	second := validEntry()
	second.ClassName = "TI-2B"

	_, err = svc.Add(context.Background(), second)
	conflictErr, ok := IsConflictError(err)
	require.True(t, ok)
	require.Len(t, conflictErr.Conflicts, 2)
	assert.Equal(t, "RUANGAN: Lab Komputer 1 terisi TI-2A", conflictErr.Conflicts[0].Message)
	assert.Equal(t, "DOSEN: Dr. Budi Santoso sedang mengajar di kelas TI-2A", conflictErr.Conflicts[1].Message)

	// Rejected entry was never applied.
	assert.Len(t, svc.Snapshot().Schedule, 1)
}

func TestAddConvergesToRemoteOnCreateFailure(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)
	store.createErr = errors.New("boom")

	result, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)
	assert.Equal(t, "failed to save to server", result.RemoteError)
	assert.True(t, result.Resynced)

	// Resync restored the authoritative (empty) schedule.
	assert.Empty(t, svc.Snapshot().Schedule)
}

func TestEditMergesPatch(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	added, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)
	id := added.EntryIDs[0]

	newRoom := "r2"
	result, err := svc.Edit(context.Background(), models.ScheduleEntryPatch{ID: id, RoomID: &newRoom})
	require.NoError(t, err)
	assert.True(t, result.Resynced)

	snap := svc.Snapshot()
	require.Len(t, snap.Schedule, 1)
	assert.Equal(t, "r2", snap.Schedule[0].RoomID)
	// Untouched fields survive the merge.
	assert.Equal(t, "TI-2A", snap.Schedule[0].ClassName)
	assert.Equal(t, []string{"l1"}, snap.Schedule[0].LecturerIDs)
}

func TestEditUnknownID(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	newRoom := "r2"
	_, err := svc.Edit(context.Background(), models.ScheduleEntryPatch{ID: "nope", RoomID: &newRoom})
	require.Error(t, err)
}

func TestEditDoesNotConflictWithItself(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	added, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)

	// Re-saving the same coordinate must not collide with the pre-edit
	// record.
	lecturers := []string{"l1", "l2"}
	_, err = svc.Edit(context.Background(), models.ScheduleEntryPatch{
		ID:          added.EntryIDs[0],
		LecturerIDs: &lecturers,
	})
	require.NoError(t, err)
}

func TestDeleteCascadesAcrossDuplicateGroup(t *testing.T) {
	data := referenceData()
	dup := func(id string) models.ScheduleEntry {
		e := validEntry()
		e.ID = id
		return e
	}
	data.Schedule = []models.ScheduleEntry{dup("e1"), dup("e2"), dup("e3")}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)

	result, err := svc.Delete(context.Background(), "e2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e1", "e2", "e3"}, result.EntryIDs)
	assert.ElementsMatch(t, []string{"e1", "e2", "e3"}, store.deleteCalls)
	assert.Empty(t, svc.Snapshot().Schedule)
}

func TestDeleteUnknownID(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	_, err := svc.Delete(context.Background(), "nope")
	require.Error(t, err)
}

func TestDeleteGroupReportsRemoteFailureButConverges(t *testing.T) {
	data := referenceData()
	entry := validEntry()
	entry.ID = "e1"
	data.Schedule = []models.ScheduleEntry{entry}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)
	store.deleteErr = errors.New("boom")

	result, err := svc.DeleteGroup(context.Background(), []string{"e1"})
	require.NoError(t, err)
	assert.Equal(t, "failed to delete from server", result.RemoteError)

	// Remote refused the delete, so the resync brings the entry back.
	assert.Len(t, svc.Snapshot().Schedule, 1)
}

func TestBulkImportResolvesNamesAndDropsBadRows(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	rows := []ImportRow{
		{
			CourseCode:    "IF101",
			ClassName:     "TI-2A",
			Day:           "senin",
			TimeSlot:      "07:00-08:40",
			RoomName:      "Lab Komputer 1",
			LecturerNames: []string{"Dr. Budi Santoso", "Tidak Dikenal"},
		},
		{
			CourseName: "Basis Data",
			ClassName:  "TI-2B",
			Day:        "SELASA",
			TimeSlot:   "09:00-10:40",
			RoomName:   "ruang 301",
		},
		{
			// Unknown room: dropped silently.
			CourseCode: "IF101",
			ClassName:  "TI-2A",
			Day:        "RABU",
			TimeSlot:   "07:00-08:40",
			RoomName:   "Aula",
		},
	}

	result, err := svc.BulkImport(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, result.EntryIDs, 2)
	assert.True(t, result.Resynced)

	snap := svc.Snapshot()
	require.Len(t, snap.Schedule, 2)
	first := snap.Schedule[0]
	assert.Equal(t, "c1", first.CourseID)
	assert.Equal(t, "r1", first.RoomID)
	assert.Equal(t, "SENIN", first.Day)
	// Unknown lecturer name stays unassigned; first resolved one is PJMK.
	assert.Equal(t, []string{"l1"}, first.LecturerIDs)
	assert.Equal(t, "l1", first.PJMKLecturerID)
}

func TestBulkImportEmptyRows(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	_, err := svc.BulkImport(context.Background(), nil)
	require.Error(t, err)
}

func TestClearAll(t *testing.T) {
	data := referenceData()
	entry := validEntry()
	entry.ID = "e1"
	data.Schedule = []models.ScheduleEntry{entry}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)

	result, err := svc.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.RemoteError)
	assert.True(t, result.Resynced)
	assert.Empty(t, svc.Snapshot().Schedule)
}

func TestSetLockedForAll(t *testing.T) {
	data := referenceData()
	e1 := validEntry()
	e1.ID = "e1"
	e2 := validEntry()
	e2.ID = "e2"
	e2.Day = models.DaySelasa
	data.Schedule = []models.ScheduleEntry{e1, e2}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)

	result, err := svc.SetLockedForAll(context.Background(), true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e1", "e2"}, result.EntryIDs)
	assert.Equal(t, 1, store.lockCalls)

	for _, entry := range svc.Snapshot().Schedule {
		assert.True(t, entry.IsLocked)
	}
}

func TestSetLockedForAllEmptyScheduleSkipsRemote(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := newTestService(t, store)

	result, err := svc.SetLockedForAll(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, result.EntryIDs)
	assert.Zero(t, store.lockCalls)
}

func TestRefreshFailureKeepsLocalData(t *testing.T) {
	data := referenceData()
	entry := validEntry()
	entry.ID = "e1"
	data.Schedule = []models.ScheduleEntry{entry}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)

	store.fetchErr = errors.New("down")
	err := svc.Refresh(context.Background())
	require.Error(t, err)

	// Last good snapshot survives a failed poll.
	assert.Len(t, svc.Snapshot().Schedule, 1)
}

func TestGroupedScheduleCollapsesDuplicates(t *testing.T) {
	data := referenceData()
	bare := validEntry()
	bare.ID = "e1"
	bare.LecturerIDs = nil
	lectured := validEntry()
	lectured.ID = "e2"
	data.Schedule = []models.ScheduleEntry{bare, lectured}
	store := &fakeStore{data: data}
	svc := newTestService(t, store)

	groups := svc.GroupedSchedule()
	require.Len(t, groups, 1)
	assert.Equal(t, "e2", groups[0].Representative.ID)
	assert.Equal(t, []string{"e1", "e2"}, groups[0].MemberIDs)
}

func TestOnChangeFiresOnMutations(t *testing.T) {
	store := &fakeStore{data: referenceData()}
	svc := NewScheduleService(store, ScheduleServiceOptions{}, zerolog.Nop())

	var notified int
	svc.SetOnChange(func() { notified++ })
	require.NoError(t, svc.Refresh(context.Background()))
	require.Equal(t, 1, notified)

	_, err := svc.Add(context.Background(), validEntry())
	require.NoError(t, err)
	// Local apply plus post-mutation resync.
	assert.GreaterOrEqual(t, notified, 3)
}
