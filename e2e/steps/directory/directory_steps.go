package directory

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cucumber/godog"
)

type TestContext interface {
	POST(path string, body any, token string) error
	GET(path, token string) error
	PhoneFor(alias string) string
	AccountID(alias string) (int64, error)
	Token(alias string) string
}

// RegisterSteps registers lookup, contact and spam step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &directorySteps{tc: tc}

	ctx.Step(`^"([^"]*)" saves "([^"]*)" as a contact named "([^"]*)"$`, steps.saveContact)
	ctx.Step(`^"([^"]*)" saves an unregistered number "([^"]*)" named "([^"]*)"$`, steps.saveUnregisteredContact)
	ctx.Step(`^"([^"]*)" lists their contacts$`, steps.listContacts)
	ctx.Step(`^"([^"]*)" views the profile of "([^"]*)"$`, steps.viewProfile)
	ctx.Step(`^"([^"]*)" reports "([^"]*)" as spam$`, steps.reportSpam)
	ctx.Step(`^"([^"]*)" searches for the name "([^"]*)"$`, steps.searchByName)
	ctx.Step(`^"([^"]*)" looks up the phone of "([^"]*)"$`, steps.lookupPhoneOf)
	ctx.Step(`^"([^"]*)" looks up the phone number "([^"]*)"$`, steps.lookupPhone)
}

type directorySteps struct {
	tc TestContext
}

func (s *directorySteps) saveContact(_ context.Context, owner, target, name string) error {
	return s.tc.POST("/api/users/contacts", map[string]string{"name": name, "phone": s.tc.PhoneFor(target)}, s.tc.Token(owner))
}

func (s *directorySteps) saveUnregisteredContact(_ context.Context, owner, phone, name string) error {
	return s.tc.POST("/api/users/contacts", map[string]string{"name": name, "phone": phone}, s.tc.Token(owner))
}

func (s *directorySteps) listContacts(_ context.Context, owner string) error {
	return s.tc.GET("/api/users/contacts", s.tc.Token(owner))
}

func (s *directorySteps) viewProfile(_ context.Context, viewer, target string) error {
	id, err := s.tc.AccountID(target)
	if err != nil {
		return err
	}
	return s.tc.GET("/api/users/"+strconv.FormatInt(id, 10), s.tc.Token(viewer))
}

func (s *directorySteps) reportSpam(_ context.Context, reporter, target string) error {
	return s.tc.POST("/api/users/report", map[string]string{"phone": s.tc.PhoneFor(target)}, s.tc.Token(reporter))
}

func (s *directorySteps) searchByName(_ context.Context, requester, name string) error {
	return s.tc.GET("/api/users/search?name="+url.QueryEscape(name), s.tc.Token(requester))
}

func (s *directorySteps) lookupPhoneOf(ctx context.Context, requester, target string) error {
	return s.lookupPhone(ctx, requester, s.tc.PhoneFor(target))
}

func (s *directorySteps) lookupPhone(_ context.Context, requester, phone string) error {
	return s.tc.GET("/api/users/search/phone?phone="+url.QueryEscape(phone), s.tc.Token(requester))
}
