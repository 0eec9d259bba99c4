package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	applog "expenseboard/internal/log"
	"expenseboard/internal/state"
)

const backendCallTimeout = 10 * time.Second

// renderTemplate executes a named template into a buffer so a render
// failure never produces a half-written response.
func (s *Server) renderTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := s.renderTemplate("index.html", s.mainViewModel())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Index render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// handleExpensesView renders the list+form partial.
func (s *Server) handleExpensesView(w http.ResponseWriter, r *http.Request) {
	s.writeExpensesView(w, r, NewHTMXResponse())
}

// handleReload re-runs the initial collection load after a failure.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	s.store.SetLoading()

	ctx, cancel := context.WithTimeout(r.Context(), backendCallTimeout)
	defer cancel()

	expenses, err := s.backend.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Collection reload failed", applog.FieldError, err)
		s.store.SetFailed(err)
	} else {
		logger.InfoContext(ctx, "Collection reloaded", "count", len(expenses))
		s.store.SetLoaded(expenses)
	}

	s.writeExpensesView(w, r, NewHTMXResponse())
}

// handleCreate persists a new expense and appends it to the collection.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").TargetMessages().Write(w)
		return
	}

	payload, err := payloadFromForm(r)
	if err != nil {
		UnprocessableEntityError("A valid date is required").TargetMessages().Write(w)
		return
	}
	if err := payload.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).TargetMessages().Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendCallTimeout)
	defer cancel()

	created, err := s.backend.Create(ctx, payload)
	if err != nil {
		logger.ErrorContext(ctx, "Create expense failed",
			applog.FieldOperation, applog.OpCreate,
			applog.FieldError, err)
		// The form keeps its unsaved values; only the message area changes.
		BadGatewayError("Error saving expense").TargetMessages().Write(w)
		return
	}

	s.store.Append(created)
	logger.InfoContext(ctx, "Expense created",
		applog.FieldExpenseID, created.ID,
		applog.FieldPaidBy, created.PaidBy,
		applog.FieldCategory, created.Type,
		applog.FieldAmount, created.Amount.String())

	s.writeExpensesView(w, r, NewHTMXResponse().
		TriggerExpenseCreated(created.ID).
		TriggerNotification(NotificationSuccess, "Expense recorded").
		Retarget("#expenses-view"))
}

// handleStartEdit loads a record into the form's editing slot.
func (s *Server) handleStartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		NotFoundError("Unknown expense").TargetMessages().Write(w)
		return
	}

	expenses, _ := s.store.Snapshot()
	for _, e := range expenses {
		if e.ID == id {
			s.store.SetEditing(e)
			s.writeExpensesView(w, r, NewHTMXResponse().Retarget("#expenses-view"))
			return
		}
	}
	NotFoundError("Unknown expense").TargetMessages().Write(w)
}

// handleCancelEdit leaves edit mode and resets the form to defaults.
func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.store.ClearEditing()
	s.writeExpensesView(w, r, NewHTMXResponse().Retarget("#expenses-view"))
}

// handleUpdate replaces all fields of the record being edited.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	id, ok := parseID(r)
	if !ok {
		NotFoundError("Unknown expense").TargetMessages().Write(w)
		return
	}

	if !s.store.BeginMutation(id) {
		ConflictError("Another change to this expense is still in progress").TargetMessages().Write(w)
		return
	}
	defer s.store.EndMutation(id)

	if err := r.ParseForm(); err != nil {
		ErrorResponse(http.StatusBadRequest, "Invalid request format").TargetMessages().Write(w)
		return
	}

	payload, err := payloadFromForm(r)
	if err != nil {
		UnprocessableEntityError("A valid date is required").TargetMessages().Write(w)
		return
	}
	if err := payload.Validate(); err != nil {
		UnprocessableEntityError(err.Error()).TargetMessages().Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendCallTimeout)
	defer cancel()

	updated, err := s.backend.Update(ctx, id, payload)
	if err != nil {
		logger.ErrorContext(ctx, "Update expense failed",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldExpenseID, id,
			applog.FieldError, err)
		// Edit mode stays active and the form keeps the unsaved values.
		BadGatewayError("Error saving expense").TargetMessages().Write(w)
		return
	}

	if !s.store.ReplaceByID(updated) {
		logger.WarnContext(ctx, "Updated record missing from local collection", applog.FieldExpenseID, id)
	}
	s.store.ClearEditing()
	logger.InfoContext(ctx, "Expense updated", applog.FieldExpenseID, id)

	s.writeExpensesView(w, r, NewHTMXResponse().
		TriggerExpenseUpdated(id).
		TriggerNotification(NotificationSuccess, "Expense updated").
		Retarget("#expenses-view"))
}

// handleDelete removes a record remotely, then locally on success.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	id, ok := parseID(r)
	if !ok {
		NotFoundError("Unknown expense").TargetMessages().Write(w)
		return
	}

	if !s.store.BeginMutation(id) {
		ConflictError("Another change to this expense is still in progress").TargetMessages().Write(w)
		return
	}
	defer s.store.EndMutation(id)

	ctx, cancel := context.WithTimeout(r.Context(), backendCallTimeout)
	defer cancel()

	if err := s.backend.Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Delete expense failed",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldExpenseID, id,
			applog.FieldError, err)
		// The record stays in place on failure.
		BadGatewayError("Failed to delete").TargetMessages().Write(w)
		return
	}

	s.store.RemoveByID(id)
	if editing, ok := s.store.Editing(); ok && editing.ID == id {
		s.store.ClearEditing()
	}
	logger.InfoContext(ctx, "Expense deleted", applog.FieldExpenseID, id)

	s.writeExpensesView(w, r, NewHTMXResponse().
		TriggerExpenseDeleted(id).
		TriggerNotification(NotificationSuccess, "Expense deleted").
		Retarget("#expenses-view"))
}

// handleViewSwitch flips the active panel. No data refetch happens here;
// the dashboard partial loads itself when it appears.
func (s *Server) handleViewSwitch(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	switch state.View(name) {
	case state.ViewExpenses:
		s.store.SetView(state.ViewExpenses)
	case state.ViewAnalytics:
		s.store.SetView(state.ViewAnalytics)
	default:
		NotFoundError("Unknown view").TargetMessages().Write(w)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "View switched", applog.FieldView, name)

	body, err := s.renderTemplate("main_panel", s.mainViewModel())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Main panel render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	NewHTMXResponse().Body(body).Header("Content-Type", "text/html; charset=utf-8").Write(w)
}

// writeExpensesView renders the list+form partial into the prepared
// builder and sends it.
func (s *Server) writeExpensesView(w http.ResponseWriter, r *http.Request, builder *HTMXResponseBuilder) {
	body, err := s.renderTemplate("expenses_view", s.expensesViewModel())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Expenses view render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	builder.Body(body).Header("Content-Type", "text/html; charset=utf-8").Write(w)
}
