package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventStream(t *testing.T, events []string, hold bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "swaparr", r.URL.Query().Get("app"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher := w.(http.Flusher)
		for _, ev := range events {
			fmt.Fprintf(w, "%s\n\n", ev)
			flusher.Flush()
		}
		if hold {
			<-r.Context().Done()
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSSEDialer_DeliversLines(t *testing.T) {
	srv := eventStream(t, []string{
		"data: first line",
		"data: second\ndata: third",
	}, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opened := make(chan struct{}, 1)
	lines := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- NewSSEDialer("secret").Dial(ctx, srv.URL+"/logs?app=swaparr",
			func() { opened <- struct{}{} },
			func(l string) { lines <- l },
		)
	}()

	select {
	case <-opened:
	case <-time.After(waitTimeout):
		require.FailNow(t, "stream never opened")
	}

	var got []string
	for len(got) < 3 {
		select {
		case l := <-lines:
			got = append(got, l)
		case <-time.After(waitTimeout):
			require.FailNow(t, "missing lines", "got %v", got)
		}
	}
	assert.Equal(t, []string{"first line", "second", "third"}, got)

	cancel()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		require.FailNow(t, "dial did not return after cancel")
	}
}

func TestSSEDialer_RejectedStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	opened := false
	err := NewSSEDialer("").Dial(context.Background(), srv.URL+"/logs", func() { opened = true }, func(string) {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.False(t, opened)
}

func TestSSEDialer_ServerCloseReturns(t *testing.T) {
	srv := eventStream(t, []string{"data: only"}, false)

	lines := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- NewSSEDialer("secret").Dial(context.Background(), srv.URL+"/logs?app=swaparr", func() {}, func(l string) { lines <- l })
	}()

	select {
	case <-done:
	case <-time.After(waitTimeout):
		require.FailNow(t, "dial should return when the server ends the stream")
	}
	assert.Equal(t, "only", <-lines)
}
