package stream

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/r3labs/sse/v2"
	"gopkg.in/cenkalti/backoff.v1"
)

// SSEDialer reads the server's event-stream endpoint. Each event carries
// one log line; multi-line data is split so every line is classified on
// its own.
type SSEDialer struct {
	httpClient *http.Client
	headers    map[string]string
}

// NewSSEDialer returns a dialer that sends apiKey (when set) with the
// stream request.
func NewSSEDialer(apiKey string) *SSEDialer {
	d := &SSEDialer{
		// No client timeout: the response body stays open for the life of
		// the stream and is closed through the request context.
		httpClient: &http.Client{},
		headers:    map[string]string{},
	}
	if apiKey != "" {
		d.headers["X-Api-Key"] = apiKey
	}
	return d
}

// Dial implements Dialer. The library's own reconnect loop is disabled;
// reconnecting is the Manager's job.
func (d *SSEDialer) Dial(ctx context.Context, url string, onOpen func(), onLine func(string)) error {
	client := sse.NewClient(url)
	client.Connection = d.httpClient
	client.ReconnectStrategy = &backoff.StopBackOff{}
	for k, v := range d.headers {
		client.Headers[k] = v
	}
	client.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("log stream returned %s", resp.Status)
		}
		onOpen()
		return nil
	}

	err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		if msg == nil || len(msg.Data) == 0 {
			return
		}
		for _, line := range strings.Split(string(msg.Data), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				onLine(line)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("log stream %s: %w", url, err)
	}
	return nil
}
