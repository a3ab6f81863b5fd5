package services

import (
	"fmt"
	"math"
	"time"

	"grant-management-api/models"
	"grant-management-api/utils"

	"gorm.io/gorm"
)

// ReportService owns the monthly evaluation snapshot, the analytics
// series and the reviewer performance table. All aggregation happens
// in memory over fetched rows.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ReportWindow is a half-open [Start, End) calendar-month range.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window for the given calendar month.
func MonthWindow(year int, month time.Month) ReportWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return ReportWindow{Start: start, End: start.AddDate(0, 1, 0)}
}

func (w ReportWindow) contains(t time.Time) bool {
	return !t.IsZero() && !t.Before(w.Start) && t.Before(w.End)
}

// ContainsProposal applies the OR-union windowing rule: a proposal is
// in range when its date_submitted OR its create_at falls in range.
func (w ReportWindow) ContainsProposal(p *models.Proposal) bool {
	if p.DateSubmitted != nil && w.contains(*p.DateSubmitted) {
		return true
	}
	if p.CreateAt != nil && w.contains(*p.CreateAt) {
		return true
	}
	return false
}

// MonthlyTotals holds the derived counts for one report period.
type MonthlyTotals struct {
	Total           int
	Approved        int
	Rejected        int
	Pending         int
	ApprovedFunding float64
	AverageScore    float64
	ActiveGrants    int
	ClosedGrants    int
}

// BuildMonthlyTotals partitions the in-window proposals by status,
// sums funding over approved ones, averages completed review scores
// for the in-window set, and counts grants with the active/closed
// deadline predicates. The grant predicates are intentionally not
// complements of each other; a grant can land in neither bucket.
func BuildMonthlyTotals(window ReportWindow, proposals []models.Proposal, reviews []models.Review, grants []models.Grant) MonthlyTotals {
	var totals MonthlyTotals

	inWindow := make(map[int]bool)
	for i := range proposals {
		p := &proposals[i]
		if !window.ContainsProposal(p) {
			continue
		}
		inWindow[p.ProposalID] = true
		totals.Total++

		switch {
		case p.Status == models.ProposalApproved:
			totals.Approved++
			totals.ApprovedFunding += p.Funding
		case p.Status == models.ProposalRejected:
			totals.Rejected++
		case p.Status.Pending():
			totals.Pending++
		}
	}

	scoreSum := 0.0
	scoreCount := 0
	for i := range reviews {
		r := &reviews[i]
		if r.Status != models.ReviewCompleted || r.Score == nil {
			continue
		}
		if !inWindow[r.ProposalID] {
			continue
		}
		scoreSum += *r.Score
		scoreCount++
	}
	if scoreCount > 0 {
		totals.AverageScore = scoreSum / float64(scoreCount)
	}

	for i := range grants {
		g := &grants[i]
		if g.Status != models.GrantClosed && !g.Deadline.Before(window.Start) {
			totals.ActiveGrants++
		}
		if g.Status == models.GrantClosed && g.Deadline.Before(window.End) {
			totals.ClosedGrants++
		}
	}

	return totals
}

// GenerateReport computes the snapshot for the given month and
// persists it as a new Final report. Existing reports for the same
// period are never reused or replaced.
func (s *ReportService) GenerateReport(year int, month time.Month, generatedBy int) (*models.Report, error) {
	window := MonthWindow(year, month)

	var proposals []models.Proposal
	if err := s.db.Where("delete_at IS NULL").Find(&proposals).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.Where("status = ?", models.ReviewCompleted).Find(&reviews).Error; err != nil {
		return nil, err
	}

	var grants []models.Grant
	if err := s.db.Where("delete_at IS NULL").Find(&grants).Error; err != nil {
		return nil, err
	}

	totals := BuildMonthlyTotals(window, proposals, reviews, grants)

	report := models.Report{
		Period:            fmt.Sprintf("%04d-%02d", year, int(month)),
		TotalProposals:    totals.Total,
		ApprovedProposals: totals.Approved,
		RejectedProposals: totals.Rejected,
		PendingProposals:  totals.Pending,
		TotalFunding:      utils.FormatCurrency(totals.ApprovedFunding),
		AverageScore:      totals.AverageScore,
		ActiveGrants:      totals.ActiveGrants,
		ClosedGrants:      totals.ClosedGrants,
		Status:            models.ReportFinal,
		GeneratedBy:       generatedBy,
		GeneratedAt:       time.Now(),
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthBucket is one entry of the 12-month analytics series.
type MonthBucket struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Funding float64 `json:"funding"`
}

// MonthlyBuckets builds the Jan-Dec series for one year with the
// OR-union window per month. When every bucket is empty, all
// proposals ever created fold into the current real-world month so
// the chart never renders blank.
func MonthlyBuckets(proposals []models.Proposal, year int, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	empty := true

	for m := time.January; m <= time.December; m++ {
		window := MonthWindow(year, m)
		bucket := &buckets[m-1]
		bucket.Month = monthLabels[m-1]

		for i := range proposals {
			if !window.ContainsProposal(&proposals[i]) {
				continue
			}
			bucket.Count++
			bucket.Funding += proposals[i].Funding
			empty = false
		}
	}

	if empty && len(proposals) > 0 {
		bucket := &buckets[now.Month()-1]
		for i := range proposals {
			bucket.Count++
			bucket.Funding += proposals[i].Funding
		}
	}

	return buckets
}

// categoryPalette is the fixed chart palette, assigned by insertion
// order and cycling when more categories appear than colors.
var categoryPalette = [10]string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// CategoryStat is one slice of the category breakdown chart.
type CategoryStat struct {
	Category models.GrantCategory `json:"category"`
	Count    int                  `json:"count"`
	Funding  float64              `json:"funding"`
	Color    string               `json:"color"`
}

// CategoryBreakdown maps every proposal ever created (no year filter)
// into category totals, colored by insertion order.
func CategoryBreakdown(proposals []models.Proposal) []CategoryStat {
	index := make(map[models.GrantCategory]int)
	var stats []CategoryStat

	for i := range proposals {
		p := &proposals[i]
		pos, ok := index[p.Category]
		if !ok {
			pos = len(stats)
			index[p.Category] = pos
			stats = append(stats, CategoryStat{
				Category: p.Category,
				Color:    categoryPalette[pos%len(categoryPalette)],
			})
		}
		stats[pos].Count++
		stats[pos].Funding += p.Funding
	}

	return stats
}

// Analytics is the dashboard payload cached in Redis.
type Analytics struct {
	Year       int            `json:"year"`
	Monthly    []MonthBucket  `json:"monthly"`
	Categories []CategoryStat `json:"categories"`
}

// GetAnalytics builds the dashboard series for the current year.
func (s *ReportService) GetAnalytics(now time.Time) (*Analytics, error) {
	var proposals []models.Proposal
	if err := s.db.Where("delete_at IS NULL").Find(&proposals).Error; err != nil {
		return nil, err
	}

	return &Analytics{
		Year:       now.Year(),
		Monthly:    MonthlyBuckets(proposals, now.Year(), now),
		Categories: CategoryBreakdown(proposals),
	}, nil
}

// ReviewerPerformance is one row of the reviewer performance table.
type ReviewerPerformance struct {
	ReviewerID            int     `json:"reviewer_id"`
	ReviewerName          string  `json:"reviewer_name"`
	TotalAssigned         int     `json:"total_assigned"`
	Completed             int     `json:"completed"`
	AverageScore          float64 `json:"average_score"`
	AverageTurnaroundDays float64 `json:"average_turnaround_days"`
	OnTimeRate            float64 `json:"on_time_rate"`
}

// TurnaroundDays returns the whole-day turnaround between a proposal's
// submission and the review date, rounded up. Negative spans (review
// dated before submission) return -1 and are skipped by callers.
func TurnaroundDays(reviewDate, submitted time.Time) int {
	span := reviewDate.Sub(submitted)
	if span < 0 {
		return -1
	}
	return int(math.Ceil(span.Hours() / 24))
}

// BuildReviewerPerformance aggregates per-reviewer counts, scores,
// turnaround and on-time rate. Reviews must carry their Proposal.
func BuildReviewerPerformance(reviews []models.Review, reviewers map[int]models.User) []ReviewerPerformance {
	order := make([]int, 0)
	rows := make(map[int]*ReviewerPerformance)

	scoreSums := make(map[int]float64)
	scoreCounts := make(map[int]int)
	turnaroundSums := make(map[int]int)
	turnaroundCounts := make(map[int]int)
	onTime := make(map[int]int)

	for i := range reviews {
		r := &reviews[i]
		row, ok := rows[r.ReviewerID]
		if !ok {
			row = &ReviewerPerformance{ReviewerID: r.ReviewerID}
			if u, found := reviewers[r.ReviewerID]; found {
				row.ReviewerName = u.FullName()
			}
			rows[r.ReviewerID] = row
			order = append(order, r.ReviewerID)
		}
		row.TotalAssigned++

		if r.Status != models.ReviewCompleted || r.ReviewDate == nil {
			continue
		}
		row.Completed++

		if r.Score != nil {
			scoreSums[r.ReviewerID] += *r.Score
			scoreCounts[r.ReviewerID]++
		}

		if r.Proposal != nil {
			if days := TurnaroundDays(*r.ReviewDate, r.Proposal.SubmittedOrCreated()); days >= 0 {
				turnaroundSums[r.ReviewerID] += days
				turnaroundCounts[r.ReviewerID]++
			}
			if !r.ReviewDate.After(r.Proposal.Deadline) {
				onTime[r.ReviewerID]++
			}
		}
	}

	result := make([]ReviewerPerformance, 0, len(order))
	for _, id := range order {
		row := rows[id]
		if scoreCounts[id] > 0 {
			row.AverageScore = scoreSums[id] / float64(scoreCounts[id])
		}
		if turnaroundCounts[id] > 0 {
			row.AverageTurnaroundDays = float64(turnaroundSums[id]) / float64(turnaroundCounts[id])
		}
		if row.Completed > 0 {
			row.OnTimeRate = float64(onTime[id]) / float64(row.Completed)
		}
		result = append(result, *row)
	}

	return result
}

// GetReviewerPerformance fetches every review with its proposal and
// the reviewer accounts, then aggregates.
func (s *ReportService) GetReviewerPerformance() ([]ReviewerPerformance, error) {
	var reviews []models.Review
	if err := s.db.Preload("Proposal").Find(&reviews).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Where("role = ? AND delete_at IS NULL", models.RoleReviewer).Find(&users).Error; err != nil {
		return nil, err
	}

	reviewers := make(map[int]models.User, len(users))
	for _, u := range users {
		reviewers[u.UserID] = u
	}

	return BuildReviewerPerformance(reviews, reviewers), nil
}
