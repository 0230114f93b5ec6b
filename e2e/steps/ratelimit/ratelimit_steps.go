package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path, token string) error
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I GET "([^"]*)" without a token$`, steps.getAnonymous)
	ctx.Step(`^the rate limit headers should be present$`, steps.headersPresent)
	ctx.Step(`^the remaining budget should decrease on the next request to "([^"]*)"$`, steps.remainingDecreases)
}

type ratelimitSteps struct {
	tc TestContext
}

func (s *ratelimitSteps) getAnonymous(_ context.Context, path string) error {
	return s.tc.GET(path, "")
}

func (s *ratelimitSteps) headersPresent(_ context.Context) error {
	for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if s.tc.GetLastResponseHeader(h) == "" {
			return fmt.Errorf("missing header %s", h)
		}
	}
	return nil
}

func (s *ratelimitSteps) remainingDecreases(_ context.Context, path string) error {
	before, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Remaining"))
	if err != nil {
		return fmt.Errorf("parse remaining: %w", err)
	}
	if err := s.tc.GET(path, ""); err != nil {
		return err
	}
	after, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Remaining"))
	if err != nil {
		return fmt.Errorf("parse remaining: %w", err)
	}
	// Other clients sharing the IP may also spend budget.
	if after >= before {
		return fmt.Errorf("remaining did not decrease: %d then %d", before, after)
	}
	return nil
}
