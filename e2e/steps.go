package e2e

import (
	"github.com/cucumber/godog"

	"rubrica/e2e/steps/auth"
	"rubrica/e2e/steps/common"
	"rubrica/e2e/steps/contacts"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	contacts.RegisterSteps(ctx, tc)
}
