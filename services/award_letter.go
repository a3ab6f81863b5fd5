package services

import (
	"bytes"
	"fmt"
	"time"

	"grant-management-api/models"
	"grant-management-api/utils"

	"github.com/go-pdf/fpdf"
)

// BuildAwardLetter renders the award letter for an approved proposal.
// Generated per request, never cached. Layout uses fixed coordinates
// for the header, body and signature blocks.
func BuildAwardLetter(proposal *models.Proposal, researcher *models.User, grant *models.Grant) ([]byte, error) {
	if proposal.Status != models.ProposalApproved {
		return nil, fmt.Errorf("proposal %d is not approved", proposal.ProposalID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 25)
	pdf.Cell(170, 10, "Grant Award Letter")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 36)
	pdf.Cell(170, 5, time.Now().Format("January 2, 2006"))
	pdf.SetLineWidth(0.5)
	pdf.Line(20, 44, 190, 44)

	// Body block
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(20, 54)
	pdf.Cell(170, 6, fmt.Sprintf("Dear %s,", researcher.FullName()))

	pdf.SetXY(20, 66)
	body := fmt.Sprintf(
		"We are pleased to inform you that your proposal \"%s\" has been approved for funding "+
			"under the grant \"%s\". The awarded amount is %s in the %s category.",
		proposal.Title, grant.Title, utils.FormatCurrency(proposal.Funding), proposal.Category,
	)
	pdf.MultiCell(170, 6, body, "", "L", false)

	pdf.SetXY(20, pdf.GetY()+6)
	pdf.MultiCell(170, 6,
		"Funds will be disbursed according to the budget breakdown submitted with your proposal. "+
			"Please retain this letter for your records.",
		"", "L", false)

	// Signature block
	pdf.SetXY(20, 230)
	pdf.Line(20, 240, 80, 240)
	pdf.SetXY(20, 242)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(60, 5, "Grants Administration Office")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render award letter: %w", err)
	}
	return buf.Bytes(), nil
}
