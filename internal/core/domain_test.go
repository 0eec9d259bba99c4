package core

import (
	"strings"
	"testing"
)

func TestExpensePayloadValidate(t *testing.T) {
	good := ExpensePayload{
		Amount: dec("12.5"),
		PaidBy: "Dana",
		Type:   "Food",
		Date:   NewDate(2025, 1, 1),
		Notes:  "",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Payer, category and notes may all be empty.
	minimal := ExpensePayload{Amount: dec("0"), Date: NewDate(2025, 1, 1)}
	if err := minimal.Validate(); err != nil {
		t.Fatalf("minimal payload should validate, got %v", err)
	}

	bads := []ExpensePayload{
		{Amount: dec("1"), Date: Date{}},
		{Amount: dec("-1"), Date: NewDate(2025, 1, 1)},
		{Amount: dec("1"), Date: NewDate(2025, 1, 1), PaidBy: strings.Repeat("x", 101)},
		{Amount: dec("1"), Date: NewDate(2025, 1, 1), Type: strings.Repeat("x", 101)},
		{Amount: dec("1"), Date: NewDate(2025, 1, 1), Notes: strings.Repeat("x", 501)},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpensePayloadTrims(t *testing.T) {
	e := Expense{
		ID:     7,
		Amount: dec("50"),
		PaidBy: " A ",
		Type:   " Food ",
		Date:   NewDate(2025, 1, 1),
		Notes:  "n",
	}
	p := e.Payload()
	if p.PaidBy != "A" || p.Type != "Food" {
		t.Fatalf("payload not trimmed: %+v", p)
	}
	if !p.Amount.Equal(e.Amount) || p.Date != e.Date || p.Notes != e.Notes {
		t.Fatalf("payload fields altered: %+v", p)
	}
}
