package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"

	"github.com/gin-gonic/gin"
)

// GenerateReport computes and stores the monthly snapshot. Calling it
// twice for the same month stores two reports.
func GenerateReport(c *gin.Context) {
	var req struct {
		Month int `json:"month" binding:"required,min=1,max=12"`
		Year  int `json:"year" binding:"required,min=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	service := services.NewReportService(config.DB)
	report, err := service.GenerateReport(req.Year, time.Month(req.Month), userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report generated successfully",
		"report":  report,
	})
}

// GetEvaluationReports lists stored report snapshots, newest first.
func GetEvaluationReports(c *gin.Context) {
	var reports []models.Report
	if err := config.DB.Order("generated_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reports": reports,
		"total":   len(reports),
	})
}

// GetAnalytics returns the dashboard series, served from Redis when a
// fresh copy exists.
func GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	if cached := services.CachedAnalytics(ctx); cached != nil {
		c.JSON(http.StatusOK, gin.H{"analytics": cached, "cached": true})
		return
	}

	service := services.NewReportService(config.DB)
	analytics, err := service.GetAnalytics(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build analytics"})
		return
	}

	services.StoreAnalytics(ctx, analytics)

	c.JSON(http.StatusOK, gin.H{"analytics": analytics, "cached": false})
}

// GetReviewerPerformance returns the per-reviewer aggregate table.
func GetReviewerPerformance(c *gin.Context) {
	service := services.NewReportService(config.DB)
	performance, err := service.GetReviewerPerformance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build reviewer performance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"performance": performance,
	})
}

// ExportReports streams the CSV export: a summary section, proposal
// detail rows and review detail rows, each row hand-concatenated.
func ExportReports(c *gin.Context) {
	var proposals []models.Proposal
	if err := config.DB.Preload("Researcher").Preload("Grant").
		Where("delete_at IS NULL").
		Order("date_submitted ASC").
		Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").Preload("Proposal").
		Order("review_date ASC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	approved, rejected, pending := 0, 0, 0
	totalFunding := 0.0
	for i := range proposals {
		switch {
		case proposals[i].Status == models.ProposalApproved:
			approved++
			totalFunding += proposals[i].Funding
		case proposals[i].Status == models.ProposalRejected:
			rejected++
		case proposals[i].Status.Pending():
			pending++
		}
	}

	var b strings.Builder

	b.WriteString("Summary\n")
	b.WriteString("Total Proposals," + strconv.Itoa(len(proposals)) + "\n")
	b.WriteString("Approved," + strconv.Itoa(approved) + "\n")
	b.WriteString("Rejected," + strconv.Itoa(rejected) + "\n")
	b.WriteString("Pending," + strconv.Itoa(pending) + "\n")
	b.WriteString("Total Approved Funding," + utils.CSVField(utils.FormatCurrency(totalFunding)) + "\n")
	b.WriteString("\n")

	b.WriteString("Proposals\n")
	b.WriteString("ID,Title,Researcher,Grant,Category,Status,Funding,Submitted\n")
	for i := range proposals {
		p := &proposals[i]
		researcher := ""
		if p.Researcher != nil {
			researcher = p.Researcher.FullName()
		}
		grantTitle := ""
		if p.Grant != nil {
			grantTitle = p.Grant.Title
		}
		submitted := ""
		if p.DateSubmitted != nil {
			submitted = p.DateSubmitted.Format("2006-01-02")
		}
		b.WriteString(strconv.Itoa(p.ProposalID) + "," +
			utils.CSVField(p.Title) + "," +
			utils.CSVField(researcher) + "," +
			utils.CSVField(grantTitle) + "," +
			string(p.Category) + "," +
			utils.CSVField(string(p.Status)) + "," +
			strconv.FormatFloat(p.Funding, 'f', 2, 64) + "," +
			submitted + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Reviews\n")
	b.WriteString("ID,Proposal,Reviewer,Status,Decision,Score,Review Date\n")
	for i := range reviews {
		r := &reviews[i]
		reviewer := ""
		if r.Reviewer != nil {
			reviewer = r.Reviewer.FullName()
		}
		proposalTitle := ""
		if r.Proposal != nil {
			proposalTitle = r.Proposal.Title
		}
		decision := ""
		if r.Decision != nil {
			decision = string(*r.Decision)
		}
		score := ""
		if r.Score != nil {
			score = strconv.FormatFloat(*r.Score, 'f', 1, 64)
		}
		reviewDate := ""
		if r.ReviewDate != nil {
			reviewDate = r.ReviewDate.Format("2006-01-02")
		}
		b.WriteString(strconv.Itoa(r.ReviewID) + "," +
			utils.CSVField(proposalTitle) + "," +
			utils.CSVField(reviewer) + "," +
			string(r.Status) + "," +
			utils.CSVField(decision) + "," +
			score + "," +
			reviewDate + "\n")
	}

	filename := fmt.Sprintf("grant-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}

// GetUserStats returns account counts for the admin dashboard.
func GetUserStats(c *gin.Context) {
	var total, researchers, reviewers, admins, unverified int64

	config.DB.Model(&models.User{}).Where("delete_at IS NULL").Count(&total)
	config.DB.Model(&models.User{}).Where("role = ? AND delete_at IS NULL", models.RoleResearcher).Count(&researchers)
	config.DB.Model(&models.User{}).Where("role = ? AND delete_at IS NULL", models.RoleReviewer).Count(&reviewers)
	config.DB.Model(&models.User{}).Where("role = ? AND delete_at IS NULL", models.RoleAdmin).Count(&admins)
	config.DB.Model(&models.User{}).Where("email_verified = ? AND delete_at IS NULL", false).Count(&unverified)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total":       total,
			"researchers": researchers,
			"reviewers":   reviewers,
			"admins":      admins,
			"unverified":  unverified,
		},
	})
}

// GetGrantStats returns grant counts and funding totals for the admin
// dashboard.
func GetGrantStats(c *gin.Context) {
	var grants []models.Grant
	if err := config.DB.Where("delete_at IS NULL").Find(&grants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grants"})
		return
	}

	active, closed := 0, 0
	totalFunding := 0.0
	applicants := 0
	for i := range grants {
		if grants[i].Status == models.GrantClosed {
			closed++
		} else {
			active++
		}
		totalFunding += grants[i].Funding
		applicants += grants[i].ApplicantCount
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total":            len(grants),
			"active":           active,
			"closed":           closed,
			"total_funding":    totalFunding,
			"total_applicants": applicants,
		},
	})
}
