package e2e

import (
	"github.com/cucumber/godog"

	"callerid/e2e/steps/auth"
	"callerid/e2e/steps/common"
	"callerid/e2e/steps/directory"
	"callerid/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	directory.RegisterSteps(ctx, tc)
	ratelimit.RegisterSteps(ctx, tc)
}
