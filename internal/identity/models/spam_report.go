package models

import (
	"strings"
	"time"

	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
)

// SpamReport is one user's assertion that a phone number is spam. Reports are
// never updated and the same reporter may file several for one phone.
type SpamReport struct {
	ID         id.ReportID
	ReporterID id.UserID
	Phone      string
	CreatedAt  time.Time
}

func NewSpamReport(reporter id.UserID, phone string, now time.Time) (*SpamReport, error) {
	phone = strings.TrimSpace(phone)
	if reporter.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporter is required")
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "phone number is required to report spam")
	}
	return &SpamReport{ReporterID: reporter, Phone: phone, CreatedAt: now}, nil
}
