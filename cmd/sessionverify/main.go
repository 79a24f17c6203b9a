// sessionverify validates a session access token against a running core and
// prints the resolved claims. Mainly a smoke-test and debugging tool:
//
//	SESSIONKIT_CORE_URL=http://localhost:3567 sessionverify <token>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/sessionkit/pkg/metricsx"
	"github.com/aussiebroadwan/sessionkit/pkg/sessionx"
	"github.com/aussiebroadwan/sessionkit/pkg/slogx"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sessionverify <token>")
		os.Exit(2)
	}
	raw := os.Args[1]

	cfg := loadConfig()

	logger := slogx.New(slogx.Config{
		Service: "sessionverify",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	metrics := &metricsx.Metrics{}
	validator, err := sessionx.Init(sessionx.Config{
		CoreURL:   cfg.CoreURL,
		APIKey:    cfg.APIKey,
		Issuer:    cfg.Issuer,
		ClockSkew: cfg.ClockSkew,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Error("failed to initialise", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var claims *sessionx.ValidatedClaims
	if cfg.CheckRevocation {
		claims, err = validator.ValidateWithRevocationCheck(ctx, raw, time.Now())
	} else {
		claims, err = validator.Validate(ctx, raw, time.Now())
	}
	if err != nil {
		logger.Error("token rejected", "error", err)
		os.Exit(1)
	}

	logger.Info("token valid",
		"user_id", claims.UserID,
		"session_handle", claims.SessionHandle,
		"version", claims.Version,
		"kid", claims.KID,
		"expiry", claims.Expiry.UTC().Format(time.RFC3339),
	)

	out, err := json.MarshalIndent(claims.Payload, "", "  ")
	if err == nil {
		fmt.Println(string(out))
	}
}
