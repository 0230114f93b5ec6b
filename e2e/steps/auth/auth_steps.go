package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any, token string) error
	GET(path, token string) error
	GetResponseField(field string) (any, bool, error)
	GetLastResponseStatus() int
	PhoneFor(alias string) string
	SetAccountID(alias string, id int64)
	SetToken(alias, token string)
	Token(alias string) string
}

const password = "password123"

// RegisterSteps registers account and session step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^"([^"]*)" is registered as "([^"]*)" with email "([^"]*)"$`, steps.registeredWithEmail)
	ctx.Step(`^"([^"]*)" is registered as "([^"]*)"$`, steps.registered)
	ctx.Step(`^"([^"]*)" is logged in$`, steps.loggedIn)
	ctx.Step(`^I register "([^"]*)" again with the same phone$`, steps.registerAgain)
	ctx.Step(`^"([^"]*)" logs in with password "([^"]*)"$`, steps.loginWithPassword)
	ctx.Step(`^"([^"]*)" requests their profile$`, steps.requestProfile)
	ctx.Step(`^I GET "([^"]*)" with token "([^"]*)"$`, steps.getWithToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) register(alias, name, email string) error {
	body := map[string]string{"name": name, "phone": s.tc.PhoneFor(alias), "password": password}
	if email != "" {
		body["email"] = email
	}
	return s.tc.POST("/api/users/register", body, "")
}

func (s *authSteps) registeredWithEmail(ctx context.Context, alias, name, email string) error {
	if err := s.register(alias, name, email); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("register %s: status %d", alias, status)
	}
	id, ok, err := s.tc.GetResponseField("id")
	if err != nil || !ok {
		return fmt.Errorf("register %s: missing id", alias)
	}
	s.tc.SetAccountID(alias, int64(id.(float64)))
	return s.loggedIn(ctx, alias)
}

func (s *authSteps) registered(ctx context.Context, alias, name string) error {
	return s.registeredWithEmail(ctx, alias, name, "")
}

func (s *authSteps) registerAgain(_ context.Context, alias string) error {
	return s.register(alias, "Someone Else", "")
}

func (s *authSteps) loggedIn(ctx context.Context, alias string) error {
	if err := s.loginWithPassword(ctx, alias, password); err != nil {
		return err
	}
	token, ok, err := s.tc.GetResponseField("token")
	if err != nil || !ok {
		return fmt.Errorf("login %s: no token (status %d)", alias, s.tc.GetLastResponseStatus())
	}
	s.tc.SetToken(alias, token.(string))
	return nil
}

func (s *authSteps) loginWithPassword(_ context.Context, alias, pass string) error {
	return s.tc.POST("/api/users/login", map[string]string{"phone": s.tc.PhoneFor(alias), "password": pass}, "")
}

func (s *authSteps) requestProfile(_ context.Context, alias string) error {
	return s.tc.GET("/api/users/profile", s.tc.Token(alias))
}

func (s *authSteps) getWithToken(_ context.Context, path, token string) error {
	return s.tc.GET(path, token)
}
