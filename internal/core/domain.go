package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// Expense is one recorded shared expense. The backend assigns the ID;
	// a zero ID means the record has not been persisted yet.
	Expense struct {
		ID     int64           `json:"id"`
		Amount decimal.Decimal `json:"amount"`
		PaidBy string          `json:"paid_by"`
		Type   string          `json:"type"`
		Date   Date            `json:"date"`
		Notes  string          `json:"notes"`
	}

	// ExpensePayload carries the user-editable fields of an expense,
	// used for both create and update requests.
	ExpensePayload struct {
		Amount decimal.Decimal `json:"amount"`
		PaidBy string          `json:"paid_by"`
		Type   string          `json:"type"`
		Date   Date            `json:"date"`
		Notes  string          `json:"notes"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrNotesTooLong    = errors.New("notes too long (max 500 characters)")
	ErrPayerTooLong    = errors.New("payer too long (max 100 characters)")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
)

// Validate checks the required fields. Only amount and date are enforced;
// payer, category and notes may be empty strings.
func (p ExpensePayload) Validate() error {
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(p.PaidBy) > 100 {
		return ErrPayerTooLong
	}
	if len(p.Type) > 100 {
		return ErrCategoryTooLong
	}
	if len(p.Notes) > 500 {
		return ErrNotesTooLong
	}
	return nil
}

// Payload returns the editable fields of an existing expense.
func (e Expense) Payload() ExpensePayload {
	return ExpensePayload{
		Amount: e.Amount,
		PaidBy: strings.TrimSpace(e.PaidBy),
		Type:   strings.TrimSpace(e.Type),
		Date:   e.Date,
		Notes:  e.Notes,
	}
}
