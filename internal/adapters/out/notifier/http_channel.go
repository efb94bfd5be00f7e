package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// HTTPChannel posts events as JSON to a single endpoint. It makes one attempt
// per Send and classifies the outcome.
type HTTPChannel struct {
	name       string
	url        string
	client     *http.Client
	applicable func(notification.Event) bool
}

var _ ports.NotificationChannel = (*HTTPChannel)(nil)

func (c *HTTPChannel) Name() string {
	return c.name
}

func (c *HTTPChannel) Applicable(event notification.Event) bool {
	return c.applicable(event)
}

// Send posts the event. 2xx is success; connection errors, timeouts and 5xx
// are transient; every other outcome is permanent.
func (c *HTTPChannel) Send(ctx context.Context, event notification.Event) error {
	body, err := json.Marshal(NewPayload(event))
	if err != nil {
		return notification.NewPermanentError(c.name, fmt.Errorf("encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return notification.NewPermanentError(c.name, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := fmt.Errorf("%s responded %d: %s", c.url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	if resp.StatusCode >= 500 {
		return notification.NewTransientError(c.name, statusErr)
	}
	return notification.NewPermanentError(c.name, statusErr)
}

// classifyTransportError handles failures where no response arrived. Only a
// cancelled context is permanent: the unit is being shut down.
func (c *HTTPChannel) classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return notification.NewPermanentError(c.name, err)
	}
	return notification.NewTransientError(c.name, err)
}
