package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vk/phasegrid/internal/ctxlog"
	"github.com/vk/phasegrid/internal/frame"
	"github.com/vk/phasegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// defaultTimeout bounds a single request when the system sets no timeout.
const defaultTimeout = 10 * time.Second

// Module registers the "http_request" handler. All systems using it share
// one client so connections are reused from frame to frame.
type Module struct {
	Client *http.Client
}

// Input defines the arguments for the 'arguments' block.
type Input struct {
	URL     string `phase:"url"`
	Method  string `phase:"method,optional"`
	Timeout string `phase:"timeout,optional"`
	// Store names the frame variable receiving {status_code, body}.
	Store string `phase:"store,optional"`
	// Expect fails the system when the response status differs.
	Expect int `phase:"expect,optional"`
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	client := m.Client
	if client == nil {
		client = &http.Client{}
	}
	r.Register("http_request", registry.Handler(func(ctx context.Context, f *frame.Frame, input *Input) error {
		return onRunHttpRequest(ctx, client, f, input)
	}))
}

func onRunHttpRequest(ctx context.Context, client *http.Client, f *frame.Frame, input *Input) error {
	logger := ctxlog.FromContext(ctx)

	method := strings.ToUpper(input.Method)
	if method == "" {
		method = http.MethodGet
	}
	timeout := defaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		timeout = d
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("Making HTTP request.", "method", method, "url", input.URL, "frame", f.Index)
	req, err := http.NewRequestWithContext(ctx, method, input.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	logger.Debug("Received HTTP response.", "status", resp.Status, "bytes", len(body))

	if input.Expect != 0 && resp.StatusCode != input.Expect {
		return fmt.Errorf("unexpected status %d from %s, want %d", resp.StatusCode, input.URL, input.Expect)
	}

	if input.Store != "" {
		f.Set(input.Store, cty.ObjectVal(map[string]cty.Value{
			"status_code": cty.NumberIntVal(int64(resp.StatusCode)),
			"body":        cty.StringVal(string(body)),
		}))
	}
	return nil
}
