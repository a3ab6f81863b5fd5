package models

import (
	"testing"
	"time"
)

func TestBudgetTotal(t *testing.T) {
	p := Proposal{
		PersonnelCosts: 1000,
		EquipmentCosts: 500,
		MaterialsCosts: 250,
		TravelCosts:    150,
		OtherCosts:     100,
	}
	if got := p.BudgetTotal(); got != 2000 {
		t.Errorf("got %v want 2000", got)
	}
}

func TestValidateBudget(t *testing.T) {
	p := Proposal{
		PersonnelCosts: 2000,
		EquipmentCosts: 3000,
		MaterialsCosts: 1000,
		TravelCosts:    1000,
		OtherCosts:     3000,
	}
	if err := ValidateBudget(p.BudgetTotal(), 10000); err != nil {
		t.Fatalf("matching budget rejected: %v", err)
	}

	short := p
	short.OtherCosts = 2000
	if err := ValidateBudget(short.BudgetTotal(), 10000); err != ErrBudgetMismatch {
		t.Fatalf("9000 against 10000 funding: got %v want ErrBudgetMismatch", err)
	}

	if err := ValidateBudget(11000, 10000); err != ErrBudgetMismatch {
		t.Fatalf("overshoot: got %v want ErrBudgetMismatch", err)
	}

	if err := ValidateBudget(0, 10000); err != ErrBudgetZero {
		t.Fatalf("zero budget: got %v want ErrBudgetZero", err)
	}
}

func TestSubmittedOrCreated(t *testing.T) {
	submitted := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	p := Proposal{DateSubmitted: &submitted, CreateAt: &created}
	if got := p.SubmittedOrCreated(); !got.Equal(submitted) {
		t.Errorf("got %v want submitted date", got)
	}

	p = Proposal{CreateAt: &created}
	if got := p.SubmittedOrCreated(); !got.Equal(created) {
		t.Errorf("got %v want create date", got)
	}

	p = Proposal{}
	if got := p.SubmittedOrCreated(); !got.IsZero() {
		t.Errorf("got %v want zero time", got)
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if len(l) != 2 || l[0] != "a" || l[1] != "b" {
		t.Errorf("got %v", l)
	}

	if err := l.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if l != nil {
		t.Errorf("nil scan should clear the list, got %v", l)
	}

	if err := l.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	if err != nil {
		t.Fatalf("value nil: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil list: got %v want []", v)
	}

	v, err = StringList{"x"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `["x"]` {
		t.Errorf("got %v", v)
	}
}
