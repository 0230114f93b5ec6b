package service

import (
	"context"

	idmodels "callerid/internal/identity/models"
	id "callerid/pkg/domain"
	audit "callerid/pkg/platform/audit"
	"callerid/pkg/requestcontext"
)

// ReportSpam records one spam report. Repeat reports from the same requester
// are accepted and each one counts.
func (s *Service) ReportSpam(ctx context.Context, requesterID id.UserID, phone string) (_ *idmodels.SpamReport, err error) {
	ctx, span, start := s.start(ctx, opReportSpam, requesterID)
	defer func() { s.finish(span, opReportSpam, start, err) }()

	report, err := idmodels.NewSpamReport(requesterID, phone, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.CreateSpamReport(ctx, report); err != nil {
		return nil, s.storeFault(ctx, opReportSpam, err)
	}
	s.logAudit(ctx, audit.Event{
		Action:  string(audit.EventSpamReported),
		UserID:  requesterID,
		Subject: report.Phone,
	})
	if s.metrics != nil {
		s.metrics.IncrementSpamReported()
	}
	return report, nil
}

// AddContact saves a contact for the requester. The same phone may be saved
// more than once.
func (s *Service) AddContact(ctx context.Context, requesterID id.UserID, name, phone string) (_ *idmodels.Contact, err error) {
	ctx, span, start := s.start(ctx, opAddContact, requesterID)
	defer func() { s.finish(span, opAddContact, start, err) }()

	contact, err := idmodels.NewContact(requesterID, name, phone, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, s.storeFault(ctx, opAddContact, err)
	}
	s.logAudit(ctx, audit.Event{
		Action:  string(audit.EventContactAdded),
		UserID:  requesterID,
		Subject: contact.Phone,
	}, "contact_id", contact.ID.String())
	if s.metrics != nil {
		s.metrics.IncrementContactsAdded()
	}
	return contact, nil
}

func (s *Service) ListContacts(ctx context.Context, requesterID id.UserID) (_ []*idmodels.Contact, err error) {
	ctx, span, start := s.start(ctx, opListContacts, requesterID)
	defer func() { s.finish(span, opListContacts, start, err) }()

	contacts, err := s.store.FindContactsByOwner(ctx, requesterID)
	if err != nil {
		return nil, s.storeFault(ctx, opListContacts, err)
	}
	return contacts, nil
}
