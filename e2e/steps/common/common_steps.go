package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

type TestContext interface {
	GetResponseField(field string) (any, bool, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers status and body assertions shared by every feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.fieldShouldBeNumber)
	ctx.Step(`^the response should contain field "([^"]*)"$`, steps.shouldContainField)
	ctx.Step(`^the response should not contain field "([^"]*)"$`, steps.shouldNotContainField)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items?$`, steps.listShouldHaveItems)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) statusShouldBe(_ context.Context, expected int) error {
	if got := s.tc.GetLastResponseStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(_ context.Context, field, expected string) error {
	v, ok, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("field %q missing from %s", field, s.tc.GetLastResponseBody())
	}
	if fmt.Sprint(v) != expected {
		return fmt.Errorf("field %q: expected %q, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNumber(_ context.Context, field string, expected int) error {
	v, ok, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, isNumber := v.(float64)
	if !ok || !isNumber || int(n) != expected {
		return fmt.Errorf("field %q: expected %d, got %v", field, expected, v)
	}
	return nil
}

func (s *commonSteps) shouldContainField(_ context.Context, field string) error {
	_, ok, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("field %q missing from %s", field, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) shouldNotContainField(_ context.Context, field string) error {
	_, ok, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("field %q should be absent from %s", field, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) listShouldHaveItems(_ context.Context, field string, expected int) error {
	v, ok, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	items, isList := v.([]any)
	if !ok || !isList {
		return fmt.Errorf("field %q is not a list in %s", field, s.tc.GetLastResponseBody())
	}
	if len(items) != expected {
		return fmt.Errorf("list %q: expected %d items, got %d", field, expected, len(items))
	}
	return nil
}
