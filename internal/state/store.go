// Package state owns the client-side application state: the in-memory
// expense collection, the editing slot, the active view and the load
// status. It is a single explicit object handed to the web handlers;
// nothing here is package-global. The backend stays the source of truth:
// mutations land here only after the corresponding backend call succeeded.
package state

import (
	"sync"

	"expenseboard/internal/core"
)

// View names the two main panels.
type View string

const (
	ViewExpenses  View = "expenses"
	ViewAnalytics View = "analytics"
)

// LoadState is the explicit three-state status of the initial collection
// load: a failed load renders a visible error instead of a silent empty list.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Failed
)

// LoadStatus pairs the load state with its failure reason.
type LoadStatus struct {
	State LoadState
	Err   error
}

// Store holds the coordinator state behind one mutex. All accessors copy
// data out so callers can never mutate internal slices.
type Store struct {
	mu       sync.Mutex
	expenses []core.Expense
	status   LoadStatus
	editing  *core.Expense
	view     View
	inflight map[int64]bool
}

func NewStore() *Store {
	return &Store{
		view:     ViewExpenses,
		status:   LoadStatus{State: Loading},
		inflight: make(map[int64]bool),
	}
}

// SetLoading marks the collection as loading again (used by retry).
func (s *Store) SetLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = LoadStatus{State: Loading}
}

// SetLoaded replaces the collection with a freshly fetched one.
func (s *Store) SetLoaded(expenses []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = make([]core.Expense, len(expenses))
	copy(s.expenses, expenses)
	s.status = LoadStatus{State: Loaded}
}

// SetFailed records a failed initial load with its reason.
func (s *Store) SetFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = LoadStatus{State: Failed, Err: err}
}

// Snapshot returns a copy of the collection and the current load status.
func (s *Store) Snapshot() ([]core.Expense, LoadStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, s.status
}

// Append adds a newly created record to the collection.
func (s *Store) Append(e core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

// ReplaceByID swaps the record with a matching id for the updated one.
// Returns false when no record matched; no other record is touched.
func (s *Store) ReplaceByID(e core.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			return true
		}
	}
	return false
}

// RemoveByID drops the record with a matching id from the collection.
func (s *Store) RemoveByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true
		}
	}
	return false
}

// SetEditing enters edit mode with a full copy of the record.
func (s *Store) SetEditing(e core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := e
	s.editing = &record
}

// Editing returns the record being edited, if any.
func (s *Store) Editing() (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return core.Expense{}, false
	}
	return *s.editing, true
}

// ClearEditing leaves edit mode (cancel or successful update).
func (s *Store) ClearEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// SetView switches the active panel. Pure flag flip, no refetch.
func (s *Store) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == ViewExpenses || v == ViewAnalytics {
		s.view = v
	}
}

// ActiveView returns the currently selected panel.
func (s *Store) ActiveView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// BeginMutation claims the in-flight slot for a record. It returns false
// when another mutation on the same id has not finished yet, so handlers
// can reject overlapping edit/delete on one record instead of letting the
// last response win.
func (s *Store) BeginMutation(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return false
	}
	s.inflight[id] = true
	return true
}

// EndMutation releases the in-flight slot for a record.
func (s *Store) EndMutation(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
