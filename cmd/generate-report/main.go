// Generates a monthly evaluation report from the command line,
// without going through the HTTP layer.
// cmd/generate-report/main.go
package main

import (
	"flag"
	"log"
	"time"

	"grant-management-api/config"
	"grant-management-api/services"

	"github.com/joho/godotenv"
)

func main() {
	now := time.Now()
	month := flag.Int("month", int(now.Month()), "report month (1-12)")
	year := flag.Int("year", now.Year(), "report year")
	generatedBy := flag.Int("generated-by", 0, "user id recorded as the report generator")
	flag.Parse()

	if *month < 1 || *month > 12 {
		log.Fatalf("invalid month %d, expected 1-12", *month)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	service := services.NewReportService(config.DB)
	report, err := service.GenerateReport(*year, time.Month(*month), *generatedBy)
	if err != nil {
		log.Fatal("Failed to generate report:", err)
	}

	log.Printf("Report %d generated for %s: %d submitted, %d approved, %d rejected, %d pending\n",
		report.ReportID, report.Period,
		report.TotalProposals, report.ApprovedProposals, report.RejectedProposals, report.PendingProposals)
	log.Printf("Approved funding %s, average score %.2f, active grants %d, closed grants %d\n",
		report.TotalFunding, report.AverageScore, report.ActiveGrants, report.ClosedGrants)
}
