// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/moov-io/banklink/pkg/banklink"

	"github.com/go-kit/kit/log"
)

// Providers configures the backend adapters. Configuration is read once at
// construction and never re-read.
type Providers struct {
	// Default names the provider used when resolution hints match nothing.
	Default string

	Harbor   ProviderConfig
	Meridian ProviderConfig
}

// ProviderConfig is one backend's connection details. A missing credential is
// not a construction error: the adapter logs a warning at startup and every
// call fails clearly at invocation time instead.
type ProviderConfig struct {
	BaseURL string

	// APIKey is the bearer token (Harbor).
	APIKey string

	// SigningKey is the HMAC request-signing secret (Meridian).
	SigningKey string

	// WebhookSecret verifies inbound webhook signatures. Leaving it empty
	// disables verification -- loudly logged, intended for sandboxes only.
	WebhookSecret string

	Currencies []string
	Regions    []string
}

func (p Providers) Validate(logger log.Logger) error {
	if p.Default != "" {
		if _, ok := banklink.ParseProvider(p.Default); !ok {
			return fmt.Errorf("unknown default provider %q", p.Default)
		}
	}
	if logger == nil {
		return nil
	}
	if p.Harbor.APIKey == "" {
		logger.Log("config", "harbor: no API key configured")
	}
	if p.Meridian.SigningKey == "" {
		logger.Log("config", "meridian: no signing key configured")
	}
	if p.Harbor.WebhookSecret == "" {
		logger.Log("config", "harbor: no webhook secret configured, verification will be skipped")
	}
	if p.Meridian.WebhookSecret == "" {
		logger.Log("config", "meridian: no webhook secret configured, verification will be skipped")
	}
	return nil
}
