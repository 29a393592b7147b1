package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	jwttoken "rubrica/internal/jwt_token"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any) error
	GetResponseField(field string) (any, error)
	GetAccessToken() string
	SetAccessToken(token string)
	IssueToken(claims jwttoken.Claims, issuedAt time.Time, ttl time.Duration) (string, error)
	GetLastResponseStatus() int
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in with username "([^"]*)" and password "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, steps.loggedIn)
	ctx.Step(`^I save the token$`, steps.saveToken)
	ctx.Step(`^I hold a token that expired (\d+) minutes ago$`, steps.holdExpiredToken)
	ctx.Step(`^I tamper with the token payload$`, steps.tamperPayload)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) logIn(ctx context.Context, username, password string) error {
	s.tc.SetAccessToken("")
	return s.tc.Do("POST", "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func (s *authSteps) loggedIn(ctx context.Context, username, password string) error {
	if err := s.logIn(ctx, username, password); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login as %s failed with status %d", username, status)
	}
	return s.saveToken(ctx)
}

func (s *authSteps) saveToken(ctx context.Context) error {
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("token is not a non-empty string: %v", token)
	}
	s.tc.SetAccessToken(str)
	return nil
}

func (s *authSteps) holdExpiredToken(ctx context.Context, minutes int) error {
	ttl := time.Hour
	issuedAt := time.Now().Add(-ttl - time.Duration(minutes)*time.Minute)
	token, err := s.tc.IssueToken(jwttoken.Claims{UserID: 1, Username: "admin", RoleID: 1}, issuedAt, ttl)
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token)
	return nil
}

// tamperPayload rewrites the role claim without re-signing.
func (s *authSteps) tamperPayload(ctx context.Context) error {
	parts := strings.Split(s.tc.GetAccessToken(), ".")
	if len(parts) != 3 {
		return fmt.Errorf("no token to tamper with")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	forged := strings.Replace(string(payload), `"role_id":1`, `"role_id":99`, 1)
	if forged == string(payload) {
		forged = strings.Replace(string(payload), `"role_id":2`, `"role_id":1`, 1)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	s.tc.SetAccessToken(strings.Join(parts, "."))
	return nil
}
