package notifier

import (
	"fmt"
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"

	"github.com/samber/lo"
)

// applicability lists, per channel kind, the contact field a channel needs.
// Adding a channel of an existing kind is a configuration change only.
//
//nolint:gochecknoglobals // read-only table
var applicability = map[notification.ChannelKind]func(notification.Event) bool{
	notification.KindEmail: func(e notification.Event) bool {
		return strings.TrimSpace(e.CustomerEmail()) != ""
	},
	notification.KindSMS: func(e notification.Event) bool {
		return strings.TrimSpace(e.CustomerPhone()) != ""
	},
}

// Kinds returns the channel kinds Build understands.
func Kinds() []notification.ChannelKind {
	return lo.Keys(applicability)
}

// Build creates the HTTP channel described by cfg. client may be shared by
// every channel; per-attempt timeouts come from the caller's context.
// The channel uses a copy of client that never follows redirects, so a 3xx
// answer is classified instead of being replayed as a bodiless GET.
func Build(cfg notification.ChannelConfig, client *http.Client) (*HTTPChannel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errs.NewValueIsRequiredError("http client")
	}

	applicable, ok := applicability[cfg.Kind]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("channel kind", fmt.Errorf("no transport for %q", cfg.Kind))
	}

	noRedirect := *client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &HTTPChannel{
		name:       cfg.Name,
		url:        cfg.URL,
		client:     &noRedirect,
		applicable: applicable,
	}, nil
}
