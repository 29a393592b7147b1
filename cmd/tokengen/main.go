// Package main provides a CLI tool for minting and inspecting API tokens in
// local development. Tokens signed with the dev key are rejected in production.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "rubrica/internal/jwt_token"
	"rubrica/internal/platform/config"
)

type tokenOutput struct {
	Token     string            `json:"token"`
	ExpiresIn string            `json:"expires_in"`
	Claims    *jwttoken.Claims  `json:"claims"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	issueCmd := flag.NewFlagSet("issue", flag.ExitOnError)
	issueUserID := issueCmd.Int64("user-id", 1, "User id claim")
	issueUsername := issueCmd.String("username", "admin", "Username claim")
	issueRoleID := issueCmd.Int64("role-id", 1, "Role id claim (1 admin, 2 user)")
	issueTTL := issueCmd.Duration("ttl", 0, "Token time-to-live (default: TOKEN_TTL or "+jwttoken.DefaultTTL.String()+")")
	issueJSON := issueCmd.Bool("json", false, "Output as JSON")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "issue":
		_ = issueCmd.Parse(os.Args[2:])
		claims := jwttoken.Claims{UserID: *issueUserID, Username: *issueUsername, RoleID: *issueRoleID}
		issue(claims, *issueTTL, *issueJSON)
	case "verify":
		_ = verifyCmd.Parse(os.Args[2:])
		if verifyCmd.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: tokengen verify <token>")
			os.Exit(1)
		}
		verify(verifyCmd.Arg(0))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate and inspect tokens for the rubrica API

WARNING: Without JWT_SIGNING_KEY the dev signing key is used. Such tokens are
         only accepted by servers running outside production.

Usage:
  tokengen <command> [flags]

Commands:
  issue     Sign a session token
  verify    Verify a token and print its claims

Examples:
  # Token for the seeded admin
  tokengen issue

  # Regular user token valid for ten minutes
  tokengen issue -user-id 2 -username demo -role-id 2 -ttl 10m

  # Output as JSON
  tokengen issue -json

Use "tokengen <command> -h" for more information about a command.`)
}

func newService() *jwttoken.Service {
	key := os.Getenv("JWT_SIGNING_KEY")
	if key == "" {
		key = config.DevSigningKey
	}
	var opts []jwttoken.Option
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid TOKEN_TTL %q: %v\n", raw, err)
			os.Exit(1)
		}
		opts = append(opts, jwttoken.WithDefaultTTL(ttl))
	}
	svc, err := jwttoken.NewService(key, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token service: %v\n", err)
		os.Exit(1)
	}
	return svc
}

func issue(claims jwttoken.Claims, ttl time.Duration, jsonOutput bool) {
	svc := newService()
	if ttl <= 0 {
		ttl = svc.DefaultTTL()
	}
	token, err := svc.Issue(context.Background(), claims, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			ExpiresIn: ttl.String(),
			Claims:    &claims,
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Session Token (JWT)")
	fmt.Println("===================")
	fmt.Printf("Expires In:  %s\n", ttl)
	fmt.Printf("User ID:     %d\n", claims.UserID)
	fmt.Printf("Username:    %s\n", claims.Username)
	fmt.Printf("Role ID:     %d\n", claims.RoleID)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:3001/api/contacts")
}

func verify(token string) {
	claims, err := newService().Verify(context.Background(), token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Token rejected: %v\n", err)
		os.Exit(1)
	}
	printJSON(claims)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
