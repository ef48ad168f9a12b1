package report

import (
	"fmt"

	"regwatch/internal/models"
	"regwatch/pkg/logger"
)

// defaultDirectorate labels the organizational unit the report concerns.
const defaultDirectorate = "Environment"

// Reporter turns a comparison result into a spreadsheet and mails it out.
type Reporter struct {
	email      *EmailClient
	reportPath string
	log        *logger.Logger
}

// NewReporter creates a Reporter. reportPath names the attachment file.
func NewReporter(email *EmailClient, reportPath string, log *logger.Logger) *Reporter {
	return &Reporter{email: email, reportPath: reportPath, log: log}
}

// Deliver builds the workbook for one comparison report and emails it with
// the attachment named after reportPath.
func (r *Reporter) Deliver(comparison models.ComparisonReport, fullFileName string) error {
	workbook, err := BuildWorkbook(comparison, defaultDirectorate)
	if err != nil {
		return fmt.Errorf("failed to build report workbook: %w", err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to serialize report workbook: %w", err)
	}

	subject := fmt.Sprintf("Summary Comparison Results for %s vs Neighbors", fullFileName)
	body := "Please find attached the comparison report in Excel format."
	return r.email.Send(subject, body, r.reportPath, buf.Bytes())
}
