package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pradipta/sijadwal/internal/app/models"
	"github.com/pradipta/sijadwal/internal/app/remote"
	"github.com/pradipta/sijadwal/internal/pkg/apperrors"
	"github.com/pradipta/sijadwal/internal/pkg/idgen"
)

// ScheduleService owns the canonical in-memory schedule dataset and
// mediates every mutation with the remote system of record.
//
// Consistency model: each mutation is applied locally first (optimistic),
// then sent to the remote store, then followed by a forced full resync.
// Remote failures are never rolled back precisely; the resync makes the
// authoritative state win, accepting a brief window of possibly-stale
// local state. Validation and conflict errors stop a mutation before any
// remote call is made.
type ScheduleService struct {
	mu   sync.RWMutex
	data models.Dataset

	store  remote.Store
	ids    *idgen.Generator
	logger zerolog.Logger

	// resyncDelay is the pause before the post-mutation refetch; the
	// legacy mutation pipeline is not immediately consistent.
	resyncDelay time.Duration
	// deleteThrottle is the pause between per-id deletes in a group
	// delete, to respect the remote endpoint's rate limits.
	deleteThrottle time.Duration

	syncing  atomic.Bool
	onChange func()
}

// ScheduleServiceOptions tune the reconciliation timing. Zero values mean
// no artificial delay, which is what tests want.
type ScheduleServiceOptions struct {
	ResyncDelay    time.Duration
	DeleteThrottle time.Duration
}

// NewScheduleService creates a schedule service over the given remote
// store. The local dataset starts empty; call Refresh for the cold load.
func NewScheduleService(store remote.Store, opts ScheduleServiceOptions, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		store:          store,
		ids:            idgen.NewGenerator(),
		logger:         logger,
		resyncDelay:    opts.ResyncDelay,
		deleteThrottle: opts.DeleteThrottle,
	}
}

// SetOnChange registers a hook invoked after every dataset replacement,
// used to broadcast live updates. Must be called before the service is
// shared across goroutines.
func (s *ScheduleService) SetOnChange(fn func()) {
	s.onChange = fn
}

// ReconciliationResult reports what happened to an optimistic mutation.
type ReconciliationResult struct {
	// EntryIDs are the ids the mutation touched.
	EntryIDs []string `json:"entryIds,omitempty"`
	// Imported is the aggregate row count for bulk imports.
	Imported int `json:"imported,omitempty"`
	// RemoteError carries the reportable message when the remote call
	// failed; the local apply and the resync still happened.
	RemoteError string `json:"remoteError,omitempty"`
	// Resynced reports whether the post-mutation refetch succeeded.
	Resynced bool `json:"resynced"`
}

// Snapshot returns a deep copy of the current dataset.
func (s *ScheduleService) Snapshot() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// GroupedSchedule returns the deduplicated canonical view of the schedule.
func (s *ScheduleService) GroupedSchedule() []DuplicateGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return GroupDuplicates(s.data.Schedule)
}

// SyncInFlight reports whether a refresh is currently running; the
// background poller skips its tick while one is.
func (s *ScheduleService) SyncInFlight() bool {
	return s.syncing.Load()
}

// Refresh fetches the full authoritative dataset and replaces the local
// one. Used for the cold load, the background poll, and the forced resync
// after every mutation.
func (s *ScheduleService) Refresh(ctx context.Context) error {
	s.syncing.Store(true)
	defer s.syncing.Store(false)

	data, err := s.store.FetchAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("dataset refresh failed")
		return apperrors.NewRemoteError(err, "failed to fetch schedule data from server")
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	s.notifyChanged()
	s.logger.Debug().Int("entries", len(data.Schedule)).Msg("dataset refreshed")
	return nil
}

// Add validates and inserts a new entry. The caller may leave the id
// empty; a time-based id is assigned. Conflicts and validation problems
// abort before any remote call.
func (s *ScheduleService) Add(ctx context.Context, entry models.ScheduleEntry) (ReconciliationResult, error) {
	if err := validateEntry(entry); err != nil {
		return ReconciliationResult{}, err
	}

	if entry.ID == "" {
		entry.ID = s.ids.Next()
	}
	entry.LecturerIDs = uniqueNonEmpty(entry.LecturerIDs)

	s.mu.Lock()
	canonical := CanonicalEntries(GroupDuplicates(s.data.Schedule))
	if conflicts := EvaluateConflicts(entry, canonical, NewNameIndex(s.data)); len(conflicts) > 0 {
		s.mu.Unlock()
		return ReconciliationResult{}, &ConflictError{Conflicts: conflicts}
	}
	s.data.Schedule = append(s.data.Schedule, entry)
	s.mu.Unlock()
	s.notifyChanged()

	result := ReconciliationResult{EntryIDs: []string{entry.ID}}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("entryId", entry.ID).Msg("remote create failed")
		result.RemoteError = "failed to save to server"
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// Edit merges a patch into an existing entry. The merged record is
// re-validated and re-checked for conflicts with the entry's own id
// excluded from the scan.
func (s *ScheduleService) Edit(ctx context.Context, patch models.ScheduleEntryPatch) (ReconciliationResult, error) {
	if patch.ID == "" {
		return ReconciliationResult{}, apperrors.NewValidationError("entry id is required")
	}

	s.mu.Lock()
	idx := s.indexOfLocked(patch.ID)
	if idx < 0 {
		s.mu.Unlock()
		return ReconciliationResult{}, apperrors.ErrEntryNotFound
	}

	merged := patch.Apply(s.data.Schedule[idx])
	if err := validateEntry(merged); err != nil {
		s.mu.Unlock()
		return ReconciliationResult{}, err
	}
	merged.LecturerIDs = uniqueNonEmpty(merged.LecturerIDs)

	canonical := CanonicalEntries(GroupDuplicates(s.data.Schedule))
	if conflicts := EvaluateConflicts(merged, canonical, NewNameIndex(s.data)); len(conflicts) > 0 {
		s.mu.Unlock()
		return ReconciliationResult{}, &ConflictError{Conflicts: conflicts}
	}

	s.data.Schedule[idx] = merged
	s.mu.Unlock()
	s.notifyChanged()

	result := ReconciliationResult{EntryIDs: []string{patch.ID}}
	if err := s.store.UpdateEntry(ctx, patch); err != nil {
		s.logger.Error().Err(err).Str("entryId", patch.ID).Msg("remote update failed")
		result.RemoteError = "failed to save to server"
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// Delete removes the entry with the given id and, when the id belongs to
// a duplicate group, every other member of that group as well.
func (s *ScheduleService) Delete(ctx context.Context, id string) (ReconciliationResult, error) {
	s.mu.RLock()
	groups := GroupDuplicates(s.data.Schedule)
	s.mu.RUnlock()

	group, ok := GroupContaining(groups, id)
	if !ok {
		return ReconciliationResult{}, apperrors.ErrEntryNotFound
	}
	return s.DeleteGroup(ctx, group.MemberIDs)
}

// DeleteGroup removes every listed id locally, then issues one remote
// delete per id with a throttle pause between calls, then resyncs once.
func (s *ScheduleService) DeleteGroup(ctx context.Context, ids []string) (ReconciliationResult, error) {
	if len(ids) == 0 {
		return ReconciliationResult{}, apperrors.NewValidationError("no entry ids given")
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	kept := s.data.Schedule[:0]
	removed := 0
	for _, entry := range s.data.Schedule {
		if drop[entry.ID] {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.data.Schedule = kept
	s.mu.Unlock()

	if removed == 0 {
		return ReconciliationResult{}, apperrors.ErrEntryNotFound
	}
	s.notifyChanged()

	result := ReconciliationResult{EntryIDs: ids}
	for i, id := range ids {
		if i > 0 && s.deleteThrottle > 0 {
			time.Sleep(s.deleteThrottle)
		}
		if err := s.store.DeleteEntry(ctx, id); err != nil {
			s.logger.Error().Err(err).Str("entryId", id).Msg("remote delete failed")
			result.RemoteError = "failed to delete from server"
		}
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// BulkImport resolves tabular rows against the known reference data,
// appends the resolved entries locally, sends one bulk create, and
// resyncs. Unresolvable rows are dropped; only the aggregate count is
// reported.
func (s *ScheduleService) BulkImport(ctx context.Context, rows []ImportRow) (ReconciliationResult, error) {
	if len(rows) == 0 {
		return ReconciliationResult{}, apperrors.NewValidationError("no rows to import")
	}

	s.mu.Lock()
	resolver := newImportResolver(s.data)
	entries, dropped := resolver.Resolve(rows, s.ids)
	s.data.Schedule = append(s.data.Schedule, entries...)
	s.mu.Unlock()
	s.notifyChanged()

	if dropped > 0 {
		s.logger.Warn().Int("dropped", dropped).Int("resolved", len(entries)).Msg("import rows dropped during name resolution")
	}

	result := ReconciliationResult{Imported: len(entries)}
	for _, entry := range entries {
		result.EntryIDs = append(result.EntryIDs, entry.ID)
	}

	if len(entries) > 0 {
		if err := s.store.BulkCreateEntries(ctx, entries); err != nil {
			s.logger.Error().Err(err).Msg("remote bulk create failed")
			result.RemoteError = "failed to save imported entries to server"
		}
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// ClearAll empties the schedule locally, asks the remote store to do the
// same, and resyncs.
func (s *ScheduleService) ClearAll(ctx context.Context) (ReconciliationResult, error) {
	s.mu.Lock()
	s.data.Schedule = nil
	s.mu.Unlock()
	s.notifyChanged()

	var result ReconciliationResult
	if err := s.store.DeleteAllEntries(ctx); err != nil {
		s.logger.Error().Err(err).Msg("remote clear-all failed")
		result.RemoteError = "failed to clear schedule on server"
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// SetLockedForAll flips the administrative lock flag on every entry.
func (s *ScheduleService) SetLockedForAll(ctx context.Context, locked bool) (ReconciliationResult, error) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.data.Schedule))
	for i := range s.data.Schedule {
		s.data.Schedule[i].IsLocked = locked
		ids = append(ids, s.data.Schedule[i].ID)
	}
	s.mu.Unlock()
	s.notifyChanged()

	result := ReconciliationResult{EntryIDs: ids}
	if len(ids) > 0 {
		if err := s.store.SetLockedAll(ctx, ids, locked); err != nil {
			s.logger.Error().Err(err).Bool("locked", locked).Msg("remote lock update failed")
			result.RemoteError = "failed to update lock flags on server"
		}
	}
	result.Resynced = s.resyncAfterMutation(ctx)
	return result, nil
}

// resyncAfterMutation waits out the remote pipeline lag and refetches the
// authoritative state. It runs unconditionally, success or failure, so
// the local view always converges.
func (s *ScheduleService) resyncAfterMutation(ctx context.Context) bool {
	if s.resyncDelay > 0 {
		select {
		case <-time.After(s.resyncDelay):
		case <-ctx.Done():
			return false
		}
	}
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error().Err(err).Msg("post-mutation resync failed")
		return false
	}
	return true
}

func (s *ScheduleService) indexOfLocked(id string) int {
	for i, entry := range s.data.Schedule {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (s *ScheduleService) notifyChanged() {
	if s.onChange != nil {
		s.onChange()
	}
}

// validateEntry enforces the save preconditions: a complete time
// coordinate, resolved course/room/class references, at most two distinct
// lecturers, and a PJMK designation that points into the lecturer list.
func validateEntry(entry models.ScheduleEntry) error {
	if strings.TrimSpace(entry.Day) == "" || strings.TrimSpace(entry.TimeSlot) == "" {
		return apperrors.NewValidationError("day and time slot are required")
	}
	if strings.TrimSpace(entry.CourseID) == "" {
		return apperrors.NewValidationError("course is required")
	}
	if strings.TrimSpace(entry.RoomID) == "" {
		return apperrors.NewValidationError("room is required")
	}
	if strings.TrimSpace(entry.ClassName) == "" {
		return apperrors.NewValidationError("class name is required")
	}
	if len(entry.LecturerIDs) > models.MaxLecturersPerEntry {
		return apperrors.NewValidationError(fmt.Sprintf("at most %d lecturers per entry", models.MaxLecturersPerEntry))
	}
	if len(entry.LecturerIDs) == 2 && entry.LecturerIDs[0] != "" && entry.LecturerIDs[0] == entry.LecturerIDs[1] {
		return apperrors.NewValidationError("main and team lecturer must be different")
	}
	if entry.PJMKLecturerID != "" && !containsID(entry.LecturerIDs, entry.PJMKLecturerID) {
		return apperrors.NewValidationError("PJMK lecturer must be one of the assigned lecturers")
	}
	return nil
}

// IsConflictError reports whether err is a scheduling conflict and, if
// so, returns it.
func IsConflictError(err error) (*ConflictError, bool) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}
