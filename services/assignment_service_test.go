package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"grant-management-api/models"
)

func TestEnsureReviewCreatesOnce(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	selectPattern := regexp.MustCompile("SELECT \\* FROM `reviews` WHERE proposal_id = \\? AND reviewer_id = \\? ORDER BY `reviews`.`review_id` LIMIT \\?")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: selectPattern,
			args:    []driver.Value{int64(5), int64(7), int64(1)},
			columns: []string{"review_id", "proposal_id", "reviewer_id", "status"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `reviews`"),
			args: []driver.Value{
				int64(5), int64(7), "Pending", nil, nil, nil, nil, nil, "", nil, now, now,
			},
			result: scriptedResult{lastInsertID: 42, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: selectPattern,
			args:    []driver.Value{int64(5), int64(7), int64(1)},
			columns: []string{"review_id", "proposal_id", "reviewer_id", "status"},
			rows:    [][]driver.Value{{int64(42), int64(5), int64(7), "Pending"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewAssignmentService(gormDB)

	review, created, err := service.EnsureReview(5, 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected first call to create the review")
	}
	if review.ReviewID != 42 || review.Status != models.ReviewPending {
		t.Fatalf("unexpected review: %+v", review)
	}

	again, created, err := service.EnsureReview(5, 7, now)
	if err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if created {
		t.Fatal("second call must not create another review")
	}
	if again.ReviewID != 42 {
		t.Fatalf("expected the existing review, got %+v", again)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
