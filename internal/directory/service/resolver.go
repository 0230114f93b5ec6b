package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"callerid/internal/directory/models"
	idmodels "callerid/internal/identity/models"
	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	audit "callerid/pkg/platform/audit"
)

func requesterAttr(requesterID id.UserID) attribute.KeyValue {
	return attribute.Int64("directory.requester_id", int64(requesterID))
}

// SearchByName returns prefix matches followed by substring-only matches,
// one entry per phone, each with its spam likelihood. Email is never part of
// a name search.
func (s *Service) SearchByName(ctx context.Context, requesterID id.UserID, pattern string) (_ []models.NameMatch, err error) {
	ctx, span, start := s.start(ctx, opSearchByName, requesterID)
	defer func() { s.finish(span, opSearchByName, start, err) }()

	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name query parameter is required")
	}

	var strong, weak []*idmodels.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		strong, err = s.store.FindUsersByNamePrefix(gctx, pattern)
		return err
	})
	g.Go(func() error {
		var err error
		weak, err = s.store.FindUsersByNameSubstring(gctx, pattern)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeFault(ctx, opSearchByName, err)
	}

	merged := mergeTiers(strong, weak)
	phones := make([]string, len(merged))
	for i, u := range merged {
		phones[i] = u.Phone
	}
	scores, err := s.scorer.ScoresFor(ctx, phones)
	if err != nil {
		return nil, s.storeFault(ctx, opSearchByName, err)
	}

	results := make([]models.NameMatch, len(merged))
	for i, u := range merged {
		results[i] = models.NameMatch{
			Name:           u.Name,
			Phone:          u.Phone,
			SpamLikelihood: scores[u.Phone],
		}
	}
	span.SetAttributes(
		attribute.Int("directory.tier1_count", len(strong)),
		attribute.Int("directory.result_count", len(results)),
	)
	return results, nil
}

// SearchByPhone resolves a phone to its registered account, or failing that to
// every contact-book entry that holds it. The registered branch includes the
// account email for any requester; contacts are not consulted in that case.
func (s *Service) SearchByPhone(ctx context.Context, requesterID id.UserID, phone string) (_ *models.PhoneLookup, err error) {
	ctx, span, start := s.start(ctx, opSearchByPhone, requesterID)
	defer func() { s.finish(span, opSearchByPhone, start, err) }()

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "phone query parameter is required")
	}

	user, err := s.store.FindUserByPhone(ctx, phone)
	switch {
	case err == nil:
		score, err := s.scorer.ScoreFor(ctx, user.Phone)
		if err != nil {
			return nil, s.storeFault(ctx, opSearchByPhone, err)
		}
		span.SetAttributes(attribute.Bool("directory.registered", true))
		return &models.PhoneLookup{Registered: &models.RegisteredMatch{
			ID:             user.ID,
			Name:           user.Name,
			Phone:          user.Phone,
			Email:          models.Disclose(user.Email),
			SpamLikelihood: score,
		}}, nil
	case !isNotFound(err):
		return nil, s.storeFault(ctx, opSearchByPhone, err)
	}

	contacts, err := s.store.FindContactsByPhone(ctx, phone)
	if err != nil {
		return nil, s.storeFault(ctx, opSearchByPhone, err)
	}
	if len(contacts) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no user or contact found with this phone number")
	}
	matches := make([]models.ContactMatch, len(contacts))
	for i, c := range contacts {
		matches[i] = models.ContactMatch{Name: c.Name, Phone: c.Phone}
	}
	span.SetAttributes(
		attribute.Bool("directory.registered", false),
		attribute.Int("directory.result_count", len(matches)),
	)
	return &models.PhoneLookup{Contacts: matches}, nil
}

// FetchByID returns a user's profile. The email is disclosed only when the
// requester has the target's phone saved in their own contacts. If that check
// cannot complete the call fails instead of guessing.
func (s *Service) FetchByID(ctx context.Context, requesterID, targetID id.UserID) (_ *models.Profile, err error) {
	ctx, span, start := s.start(ctx, opFetchByID, requesterID)
	defer func() { s.finish(span, opFetchByID, start, err) }()
	span.SetAttributes(attribute.Int64("directory.target_id", int64(targetID)))

	target, err := s.store.FindUserByID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, s.storeFault(ctx, opFetchByID, err)
	}

	var (
		score     int
		disclosed bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		score, err = s.scorer.ScoreFor(gctx, target.Phone)
		return err
	})
	g.Go(func() error {
		var err error
		disclosed, err = s.holdsContact(gctx, requesterID, target.Phone)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeFault(ctx, opFetchByID, err)
	}

	profile := &models.Profile{
		ID:             target.ID,
		Name:           target.Name,
		Phone:          target.Phone,
		SpamLikelihood: score,
		Email:          models.Withhold(),
	}
	if disclosed {
		profile.Email = models.Disclose(target.Email)
		if requesterID != target.ID {
			s.logAudit(ctx, audit.Event{
				Action:  string(audit.EventEmailDisclosed),
				UserID:  target.ID,
				Subject: target.Phone,
				ActorID: requesterID.String(),
			})
		}
	}
	if s.metrics != nil {
		s.metrics.RecordDisclosure(disclosed)
	}
	span.SetAttributes(attribute.Bool("directory.email_disclosed", disclosed))
	return profile, nil
}

// holdsContact reports whether owner has a contact with exactly this phone.
// Names are ignored.
func (s *Service) holdsContact(ctx context.Context, owner id.UserID, phone string) (bool, error) {
	contacts, err := s.store.FindContactsByOwner(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, c := range contacts {
		if c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}
