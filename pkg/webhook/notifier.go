// Package webhook delivers fire-and-forget notifications when a custom
// API is hit. Delivery never blocks or affects the response being
// served; failures are logged and swallowed.
package webhook

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mockforge/mockforge/pkg/logging"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Payload is the request metadata POSTed to the webhook URL.
type Payload struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Body   any    `json:"body,omitempty"`
}

// Notifier sends webhook notifications on detached goroutines.
type Notifier struct {
	client *http.Client
	log    *slog.Logger
	wg     sync.WaitGroup
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTimeout overrides the per-delivery timeout.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.client.Timeout = d
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(n *Notifier) {
		if log != nil {
			n.log = log
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		client: &http.Client{Timeout: DefaultTimeout},
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify dispatches the payload to url on a detached goroutine and
// returns immediately. Network errors and non-2xx responses are logged
// and swallowed.
func (n *Notifier) Notify(url string, payload Payload) {
	if url == "" {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(url, payload)
	}()
}

// deliver performs one POST attempt.
func (n *Notifier) deliver(url string, payload Payload) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Warn("webhook payload not serializable", "url", url, "error", err)
		return
	}

	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.log.Warn("webhook delivery failed", "url", url, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.Warn("webhook rejected", "url", url, "status", resp.StatusCode)
		return
	}
	n.log.Debug("webhook delivered", "url", url, "status", resp.StatusCode)
}

// Wait blocks until all in-flight deliveries finish. Used by tests and
// graceful shutdown.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
