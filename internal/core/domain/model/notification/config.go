package notification

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/retry"
)

// ChannelKind selects the transport a channel is built with and the contact
// field it needs.
type ChannelKind string

const (
	KindEmail ChannelKind = "email"
	KindSMS   ChannelKind = "sms"
)

const DefaultSendTimeout = 5 * time.Second

// RetryPolicy is the per channel backoff policy.
type RetryPolicy = retry.Policy

// ChannelConfig is the startup snapshot of one channel. It is passed by value
// and never changed at runtime.
type ChannelConfig struct {
	Name        string
	Kind        ChannelKind
	Enabled     bool
	URL         string
	Retry       RetryPolicy
	SendTimeout time.Duration
}

// NewChannelConfig returns an enabled channel with the default retry policy
// and send timeout.
func NewChannelConfig(name string, kind ChannelKind, endpoint string) ChannelConfig {
	return ChannelConfig{
		Name:        name,
		Kind:        kind,
		Enabled:     true,
		URL:         endpoint,
		Retry:       retry.DefaultPolicy(),
		SendTimeout: DefaultSendTimeout,
	}
}

// Validate checks a config regardless of Enabled, so a disabled channel with
// a broken URL still fails at startup.
func (c ChannelConfig) Validate() error {
	var errList []error
	if strings.TrimSpace(c.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("channel name"))
	}
	if c.Kind != KindEmail && c.Kind != KindSMS {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"channel kind", fmt.Errorf("%q is not one of %q, %q", c.Kind, KindEmail, KindSMS)))
	}
	if err := validateEndpoint(c.URL); err != nil {
		errList = append(errList, err)
	}
	if err := c.Retry.Validate(); err != nil {
		errList = append(errList, err)
	}
	if c.SendTimeout <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"send timeout", fmt.Errorf("%s is not positive", c.SendTimeout)))
	}
	if err := errors.Join(errList...); err != nil {
		return fmt.Errorf("channel %q: %w", c.Name, err)
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errs.NewValueIsRequiredError("channel url")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("channel url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("channel url", fmt.Errorf("%q is not an absolute http(s) url", endpoint))
	}
	return nil
}
