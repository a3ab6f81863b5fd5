package services

import (
	"math"
	"testing"
	"time"

	"grant-management-api/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestContainsProposalOrUnion(t *testing.T) {
	window := MonthWindow(2026, time.March)

	inMarch := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	inFebruary := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		submitted *time.Time
		created   *time.Time
		want      bool
	}{
		{"submitted in window", timePtr(inMarch), timePtr(inFebruary), true},
		{"created in window", timePtr(inFebruary), timePtr(inMarch), true},
		{"neither in window", timePtr(inFebruary), timePtr(inFebruary), false},
		{"both nil", nil, nil, false},
		{"end of window excluded", timePtr(window.End), nil, false},
		{"start of window included", timePtr(window.Start), nil, true},
	}

	for _, tc := range cases {
		p := models.Proposal{DateSubmitted: tc.submitted, CreateAt: tc.created}
		if got := window.ContainsProposal(&p); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestBuildMonthlyTotals(t *testing.T) {
	window := MonthWindow(2026, time.March)
	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	january := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	proposals := []models.Proposal{
		{ProposalID: 1, Status: models.ProposalApproved, Funding: 4000, DateSubmitted: timePtr(march)},
		{ProposalID: 2, Status: models.ProposalApproved, Funding: 6000, DateSubmitted: timePtr(march)},
		{ProposalID: 3, Status: models.ProposalRejected, DateSubmitted: timePtr(march)},
		{ProposalID: 4, Status: models.ProposalUnderReview, DateSubmitted: timePtr(march)},
		{ProposalID: 5, Status: models.ProposalNeedsRevision, CreateAt: timePtr(march)},
		// Out of window: must not count anywhere.
		{ProposalID: 6, Status: models.ProposalApproved, Funding: 9999, DateSubmitted: timePtr(january)},
	}

	reviews := []models.Review{
		{ProposalID: 1, Status: models.ReviewCompleted, Score: floatPtr(8)},
		{ProposalID: 2, Status: models.ReviewCompleted, Score: floatPtr(6)},
		// Incomplete and scoreless reviews are excluded from the average.
		{ProposalID: 3, Status: models.ReviewInProgress, Score: floatPtr(10)},
		{ProposalID: 4, Status: models.ReviewCompleted, Score: nil},
		// Review of an out-of-window proposal.
		{ProposalID: 6, Status: models.ReviewCompleted, Score: floatPtr(2)},
	}

	totals := BuildMonthlyTotals(window, proposals, reviews, nil)

	if totals.Total != 5 {
		t.Errorf("total: got %d want 5", totals.Total)
	}
	if totals.Approved != 2 || totals.Rejected != 1 || totals.Pending != 2 {
		t.Errorf("partition: got approved=%d rejected=%d pending=%d", totals.Approved, totals.Rejected, totals.Pending)
	}
	if totals.ApprovedFunding != 10000 {
		t.Errorf("approved funding: got %v want 10000", totals.ApprovedFunding)
	}
	if totals.AverageScore != 7 {
		t.Errorf("average score: got %v want 7", totals.AverageScore)
	}
}

func TestBuildMonthlyTotalsGrantBuckets(t *testing.T) {
	window := MonthWindow(2026, time.March)
	beforeStart := window.Start.AddDate(0, 0, -1)
	insideWindow := window.Start.AddDate(0, 0, 10)
	afterEnd := window.End.AddDate(0, 0, 5)

	grants := []models.Grant{
		// Open with a live deadline: active only.
		{GrantID: 1, Status: models.GrantActive, Deadline: afterEnd},
		// Open but deadline before the window: neither bucket.
		{GrantID: 2, Status: models.GrantActive, Deadline: beforeStart},
		// Closed with deadline before window end: closed only.
		{GrantID: 3, Status: models.GrantClosed, Deadline: beforeStart},
		// Closed but deadline after window end: neither bucket.
		{GrantID: 4, Status: models.GrantClosed, Deadline: afterEnd},
		// Open with deadline inside the window: active.
		{GrantID: 5, Status: models.GrantActive, Deadline: insideWindow},
	}

	totals := BuildMonthlyTotals(window, nil, nil, grants)

	if totals.ActiveGrants != 2 {
		t.Errorf("active grants: got %d want 2", totals.ActiveGrants)
	}
	if totals.ClosedGrants != 1 {
		t.Errorf("closed grants: got %d want 1", totals.ClosedGrants)
	}
}

func TestMonthlyBuckets(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	proposals := []models.Proposal{
		{ProposalID: 1, Funding: 1000, DateSubmitted: timePtr(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))},
		{ProposalID: 2, Funding: 2000, DateSubmitted: timePtr(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC))},
		{ProposalID: 3, Funding: 500, CreateAt: timePtr(time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC))},
	}

	buckets := MonthlyBuckets(proposals, 2026, now)

	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	if buckets[0].Month != "Jan" || buckets[11].Month != "Dec" {
		t.Errorf("labels: got %s..%s", buckets[0].Month, buckets[11].Month)
	}
	if buckets[2].Count != 2 || buckets[2].Funding != 3000 {
		t.Errorf("March: got count=%d funding=%v", buckets[2].Count, buckets[2].Funding)
	}
	if buckets[6].Count != 1 || buckets[6].Funding != 500 {
		t.Errorf("July: got count=%d funding=%v", buckets[6].Count, buckets[6].Funding)
	}
}

func TestMonthlyBucketsFallbackIntoCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	// All proposals dated outside the requested year.
	proposals := []models.Proposal{
		{ProposalID: 1, Funding: 1000, DateSubmitted: timePtr(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC))},
		{ProposalID: 2, Funding: 2500, CreateAt: timePtr(time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC))},
	}

	buckets := MonthlyBuckets(proposals, 2026, now)

	if buckets[8].Count != 2 || buckets[8].Funding != 3500 {
		t.Errorf("September fallback: got count=%d funding=%v", buckets[8].Count, buckets[8].Funding)
	}
	for m, bucket := range buckets {
		if m == 8 {
			continue
		}
		if bucket.Count != 0 {
			t.Errorf("month %s: expected empty bucket, got count=%d", bucket.Month, bucket.Count)
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	proposals := []models.Proposal{
		{Category: models.CategoryResearch, Funding: 1000},
		{Category: models.CategoryEducation, Funding: 2000},
		{Category: models.CategoryResearch, Funding: 500},
		{Category: models.CategoryArts, Funding: 300},
	}

	stats := CategoryBreakdown(proposals)

	if len(stats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(stats))
	}
	if stats[0].Category != models.CategoryResearch || stats[0].Count != 2 || stats[0].Funding != 1500 {
		t.Errorf("first slice: got %+v", stats[0])
	}
	if stats[1].Category != models.CategoryEducation || stats[2].Category != models.CategoryArts {
		t.Errorf("insertion order broken: got %s, %s", stats[1].Category, stats[2].Category)
	}
	if stats[0].Color != categoryPalette[0] || stats[1].Color != categoryPalette[1] || stats[2].Color != categoryPalette[2] {
		t.Errorf("palette assignment broken: %s %s %s", stats[0].Color, stats[1].Color, stats[2].Color)
	}
}

func TestCategoryPaletteCycles(t *testing.T) {
	categories := []models.GrantCategory{
		"C0", "C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10", "C11",
	}
	proposals := make([]models.Proposal, len(categories))
	for i, c := range categories {
		proposals[i] = models.Proposal{Category: c}
	}

	stats := CategoryBreakdown(proposals)

	if len(stats) != 12 {
		t.Fatalf("expected 12 categories, got %d", len(stats))
	}
	if stats[10].Color != categoryPalette[0] || stats[11].Color != categoryPalette[1] {
		t.Errorf("palette should cycle: got %s, %s", stats[10].Color, stats[11].Color)
	}
}

func TestTurnaroundDays(t *testing.T) {
	submitted := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		reviewDate time.Time
		want       int
	}{
		{"same instant", submitted, 0},
		{"partial day rounds up", submitted.Add(6 * time.Hour), 1},
		{"exact days", submitted.Add(72 * time.Hour), 3},
		{"just over rounds up", submitted.Add(72*time.Hour + time.Minute), 4},
		{"review before submission", submitted.Add(-time.Hour), -1},
	}

	for _, tc := range cases {
		if got := TurnaroundDays(tc.reviewDate, submitted); got != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestBuildReviewerPerformance(t *testing.T) {
	deadline := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	submitted := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	onTimeReview := submitted.AddDate(0, 0, 10)
	lateReview := deadline.AddDate(0, 0, 2)

	firstName := "Ada"
	lastName := "Byron"
	reviewers := map[int]models.User{
		7: {UserID: 7, FirstName: firstName, LastName: lastName},
	}

	proposal := func() *models.Proposal {
		return &models.Proposal{DateSubmitted: timePtr(submitted), Deadline: deadline}
	}

	reviews := []models.Review{
		{ReviewerID: 7, ProposalID: 1, Status: models.ReviewCompleted, Score: floatPtr(8),
			ReviewDate: timePtr(onTimeReview), Proposal: proposal()},
		{ReviewerID: 7, ProposalID: 2, Status: models.ReviewCompleted, Score: floatPtr(6),
			ReviewDate: timePtr(lateReview), Proposal: proposal()},
		// Assigned but not completed: counts toward TotalAssigned only.
		{ReviewerID: 7, ProposalID: 3, Status: models.ReviewPending, Proposal: proposal()},
		// Second reviewer, unknown in the lookup map.
		{ReviewerID: 9, ProposalID: 4, Status: models.ReviewCompleted, Score: floatPtr(10),
			ReviewDate: timePtr(onTimeReview), Proposal: proposal()},
	}

	rows := BuildReviewerPerformance(reviews, reviewers)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ReviewerID != 7 || first.ReviewerName != "Ada Byron" {
		t.Errorf("first row identity: got %+v", first)
	}
	if first.TotalAssigned != 3 || first.Completed != 2 {
		t.Errorf("counts: got assigned=%d completed=%d", first.TotalAssigned, first.Completed)
	}
	if first.AverageScore != 7 {
		t.Errorf("average score: got %v want 7", first.AverageScore)
	}
	// Turnarounds: 10 days on time, 33 days late; average 21.5.
	if first.AverageTurnaroundDays != 21.5 {
		t.Errorf("turnaround: got %v want 21.5", first.AverageTurnaroundDays)
	}
	if first.OnTimeRate != 0.5 {
		t.Errorf("on-time rate: got %v want 0.5", first.OnTimeRate)
	}

	second := rows[1]
	if second.ReviewerID != 9 || second.ReviewerName != "" {
		t.Errorf("second row identity: got %+v", second)
	}
	if second.OnTimeRate != 1 {
		t.Errorf("second on-time rate: got %v want 1", second.OnTimeRate)
	}
}

func TestBuildReviewerPerformanceSkipsNegativeTurnaround(t *testing.T) {
	submitted := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	reviews := []models.Review{
		{ReviewerID: 1, ProposalID: 1, Status: models.ReviewCompleted, Score: floatPtr(5),
			ReviewDate: timePtr(submitted.AddDate(0, 0, -5)),
			Proposal:   &models.Proposal{DateSubmitted: timePtr(submitted), Deadline: deadline}},
	}

	rows := BuildReviewerPerformance(reviews, nil)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].AverageTurnaroundDays != 0 {
		t.Errorf("negative turnaround must be skipped, got %v", rows[0].AverageTurnaroundDays)
	}
	// The review itself still counts as completed and on time.
	if rows[0].Completed != 1 || rows[0].OnTimeRate != 1 {
		t.Errorf("completion: got completed=%d onTime=%v", rows[0].Completed, rows[0].OnTimeRate)
	}
}

func TestMonthWindowBounds(t *testing.T) {
	window := MonthWindow(2026, time.December)

	wantStart := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)

	if !window.Start.Equal(wantStart) || !window.End.Equal(wantEnd) {
		t.Errorf("got [%v, %v)", window.Start, window.End)
	}
}

func TestAverageScoreZeroWhenNoCompletedReviews(t *testing.T) {
	window := MonthWindow(2026, time.March)
	march := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	proposals := []models.Proposal{
		{ProposalID: 1, Status: models.ProposalUnderReview, DateSubmitted: timePtr(march)},
	}

	totals := BuildMonthlyTotals(window, proposals, nil, nil)

	if totals.AverageScore != 0 {
		t.Errorf("average score without reviews: got %v want 0", totals.AverageScore)
	}
	if math.IsNaN(totals.AverageScore) {
		t.Error("average score must not be NaN")
	}
}
