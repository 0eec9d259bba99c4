package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"expenseboard/internal/core"
)

func sample(id int64, amount string, paidBy string) core.Expense {
	return core.Expense{
		ID:     id,
		Amount: decimal.RequireFromString(amount),
		PaidBy: paidBy,
		Type:   "Food",
		Date:   core.NewDate(2025, 1, 1),
	}
}

func TestStoreLoadLifecycle(t *testing.T) {
	s := NewStore()

	_, status := s.Snapshot()
	if status.State != Loading {
		t.Fatalf("fresh store state = %v, want Loading", status.State)
	}

	s.SetLoaded([]core.Expense{sample(1, "50", "A")})
	expenses, status := s.Snapshot()
	if status.State != Loaded || len(expenses) != 1 {
		t.Fatalf("after load: state=%v count=%d", status.State, len(expenses))
	}

	cause := errors.New("backend down")
	s.SetFailed(cause)
	_, status = s.Snapshot()
	if status.State != Failed || !errors.Is(status.Err, cause) {
		t.Fatalf("after failure: %+v", status)
	}

	s.SetLoading()
	_, status = s.Snapshot()
	if status.State != Loading || status.Err != nil {
		t.Fatalf("retry should reset to Loading, got %+v", status)
	}
}

func TestStoreMutations(t *testing.T) {
	s := NewStore()
	s.SetLoaded([]core.Expense{sample(1, "50", "A"), sample(2, "20", "B")})

	s.Append(sample(3, "12.5", "B"))
	expenses, _ := s.Snapshot()
	if len(expenses) != 3 || expenses[2].ID != 3 {
		t.Fatalf("append failed: %+v", expenses)
	}

	updated := sample(1, "75", "A")
	if !s.ReplaceByID(updated) {
		t.Fatalf("replace reported no match")
	}
	expenses, _ = s.Snapshot()
	if !expenses[0].Amount.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("record 1 amount = %s, want 75", expenses[0].Amount)
	}
	// No other record altered.
	if !expenses[1].Amount.Equal(decimal.NewFromInt(20)) || !expenses[2].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unrelated records changed: %+v", expenses)
	}

	if s.ReplaceByID(sample(99, "1", "X")) {
		t.Fatalf("replace of unknown id should report false")
	}

	if !s.RemoveByID(2) {
		t.Fatalf("remove reported no match")
	}
	expenses, _ = s.Snapshot()
	if len(expenses) != 2 {
		t.Fatalf("expected 2 records after remove, got %d", len(expenses))
	}
	for _, e := range expenses {
		if e.ID == 2 {
			t.Fatalf("record 2 still present")
		}
	}

	if s.RemoveByID(2) {
		t.Fatalf("second remove should report false")
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetLoaded([]core.Expense{sample(1, "50", "A")})

	expenses, _ := s.Snapshot()
	expenses[0].PaidBy = "mutated"

	fresh, _ := s.Snapshot()
	if fresh[0].PaidBy != "A" {
		t.Fatalf("snapshot leaked internal slice")
	}
}

func TestStoreEditingSlot(t *testing.T) {
	s := NewStore()

	if _, ok := s.Editing(); ok {
		t.Fatalf("fresh store should not be editing")
	}

	s.SetEditing(sample(1, "50", "A"))
	got, ok := s.Editing()
	if !ok || got.ID != 1 {
		t.Fatalf("editing slot = %+v, ok=%v", got, ok)
	}

	s.ClearEditing()
	if _, ok := s.Editing(); ok {
		t.Fatalf("clear did not empty the editing slot")
	}
}

func TestStoreViewToggle(t *testing.T) {
	s := NewStore()
	if s.ActiveView() != ViewExpenses {
		t.Fatalf("default view = %v", s.ActiveView())
	}

	s.SetView(ViewAnalytics)
	if s.ActiveView() != ViewAnalytics {
		t.Fatalf("view not switched")
	}

	s.SetView(View("bogus"))
	if s.ActiveView() != ViewAnalytics {
		t.Fatalf("unknown view should be ignored")
	}
}

func TestStoreMutationGuard(t *testing.T) {
	s := NewStore()

	if !s.BeginMutation(1) {
		t.Fatalf("first claim should succeed")
	}
	if s.BeginMutation(1) {
		t.Fatalf("overlapping claim on same id should fail")
	}
	if !s.BeginMutation(2) {
		t.Fatalf("claim on different id should succeed")
	}

	s.EndMutation(1)
	if !s.BeginMutation(1) {
		t.Fatalf("claim after release should succeed")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	s.SetLoaded(nil)

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Append(sample(id, "1", "A"))
			s.Snapshot()
			if s.BeginMutation(id) {
				s.EndMutation(id)
			}
		}(i)
	}
	wg.Wait()

	expenses, _ := s.Snapshot()
	if len(expenses) != 50 {
		t.Fatalf("expected 50 records, got %d", len(expenses))
	}
}
