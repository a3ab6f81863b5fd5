package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestReconcileClosesOnlyExpiredGrants(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 10)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `grants` WHERE status <> \\? AND delete_at IS NULL"),
			args:    []driver.Value{"Closed"},
			columns: []string{"grant_id", "title", "status", "deadline"},
			rows: [][]driver.Value{
				{int64(1), "Expired grant", "Active", past},
				{int64(2), "Open grant", "Active", future},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `grants` SET `status`=\\? WHERE grant_id = \\?"),
			args:    []driver.Value{"Closed", int64(1)},
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGrantReconcilerService(gormDB)
	closed, err := service.Reconcile(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected 1 closed grant, got %d", closed)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReconcileNoExpiredGrants(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `grants` WHERE status <> \\? AND delete_at IS NULL"),
			args:    []driver.Value{"Closed"},
			columns: []string{"grant_id", "title", "status", "deadline"},
			rows: [][]driver.Value{
				{int64(5), "Open grant", "Active", now.AddDate(0, 1, 0)},
			},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGrantReconcilerService(gormDB)
	closed, err := service.Reconcile(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed != 0 {
		t.Fatalf("expected no closed grants, got %d", closed)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestReconcileQueryErrorPropagates(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `grants`"),
			args:    []driver.Value{"Closed"},
			err:     errors.New("connection refused"),
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewGrantReconcilerService(gormDB)
	closed, err := service.Reconcile(time.Now())
	if err == nil {
		t.Fatal("expected an error")
	}
	if closed != 0 {
		t.Fatalf("expected 0 closed grants, got %d", closed)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
