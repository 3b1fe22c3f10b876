package gateways

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"paycore/internal/domain/entities"
)

const defaultProviderTimeoutSeconds = 15

// ProviderTimeout is the bound on every outbound provider call, taken from
// PROVIDER_TIMEOUT_SECONDS. On expiry the call surfaces as
// entities.ErrProviderUnavailable and the order stays non-terminal.
func ProviderTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv("PROVIDER_TIMEOUT_SECONDS"))
	if raw == "" {
		return defaultProviderTimeoutSeconds * time.Second
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return defaultProviderTimeoutSeconds * time.Second
	}
	return time.Duration(secs) * time.Second
}

// classifyTransportError maps transport-level failures (timeouts, refused
// connections) into the retryable taxonomy entry.
func classifyTransportError(provider entities.Provider, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s request timed out", entities.ErrProviderUnavailable, provider)
	}
	return fmt.Errorf("%w: %s: %v", entities.ErrProviderUnavailable, provider, err)
}

// classifyStatusError maps a non-success provider HTTP status into the
// taxonomy: 4xx is a definitive rejection, everything else is transient.
func classifyStatusError(provider entities.Provider, status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512]
	}
	if status >= 400 && status < 500 {
		return fmt.Errorf("%w: %s returned %d: %s", entities.ErrProviderRejected, provider, status, detail)
	}
	return fmt.Errorf("%w: %s returned %d", entities.ErrProviderUnavailable, provider, status)
}
