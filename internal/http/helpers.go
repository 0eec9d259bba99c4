package http

import (
	"net/http"
	"strconv"
	"strings"

	"expenseboard/internal/core"
	"expenseboard/internal/state"
)

// parseID extracts the {id} path value.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// payloadFromForm builds an expense payload from submitted form values.
// The amount collapses to zero when blank or unparsable; payer, category
// and notes pass through verbatim (after control-character stripping).
func payloadFromForm(r *http.Request) (core.ExpensePayload, error) {
	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		return core.ExpensePayload{}, err
	}
	return core.ExpensePayload{
		Amount: core.ParseAmount(r.Form.Get("amount")),
		PaidBy: sanitizeInput(r.Form.Get("paid_by")),
		Type:   sanitizeInput(r.Form.Get("type")),
		Date:   date,
		Notes:  sanitizeInput(r.Form.Get("notes")),
	}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// View models. Handlers format everything to strings here so templates
// stay free of logic.

type expenseRow struct {
	ID     int64
	Amount string
	PaidBy string
	Type   string
	Date   string
	Notes  string
}

type formView struct {
	Editing bool
	ID      int64
	Amount  string
	PaidBy  string
	Type    string
	Date    string // ISO calendar date for the date input
	Notes   string
}

type expensesView struct {
	State string // loading | loaded | failed
	Error string
	Rows  []expenseRow
	Form  formView
}

type mainView struct {
	View     string
	Expenses expensesView
}

func (s *Server) expenseRowView(e core.Expense) expenseRow {
	return expenseRow{
		ID:     e.ID,
		Amount: core.FormatAmount(s.currencySymbol, e.Amount),
		PaidBy: e.PaidBy,
		Type:   e.Type,
		Date:   e.Date.Display(s.dateFormat),
		Notes:  e.Notes,
	}
}

// formView builds the form model: prefilled from the editing slot when
// present, otherwise create-mode defaults with today's date.
func (s *Server) formViewModel() formView {
	if editing, ok := s.store.Editing(); ok {
		return formView{
			Editing: true,
			ID:      editing.ID,
			Amount:  editing.Amount.StringFixed(2),
			PaidBy:  editing.PaidBy,
			Type:    editing.Type,
			Date:    editing.Date.ISO(),
			Notes:   editing.Notes,
		}
	}
	return formView{Date: core.Today().ISO()}
}

func (s *Server) expensesViewModel() expensesView {
	expenses, status := s.store.Snapshot()

	view := expensesView{Form: s.formViewModel()}
	switch status.State {
	case state.Loading:
		view.State = "loading"
	case state.Failed:
		view.State = "failed"
		if status.Err != nil {
			view.Error = status.Err.Error()
		}
	default:
		view.State = "loaded"
	}

	view.Rows = make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		view.Rows = append(view.Rows, s.expenseRowView(e))
	}
	return view
}

func (s *Server) mainViewModel() mainView {
	view := mainView{View: string(s.store.ActiveView())}
	if view.View == string(state.ViewExpenses) {
		view.Expenses = s.expensesViewModel()
	}
	return view
}
