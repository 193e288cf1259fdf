package answer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, defaultBaseURL, u.Host)

	u, err = parseBaseURL("  http://10.0.2.2:5000/?x=1#frag ")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.2.2:5000", u.String())

	u, err = parseBaseURL("https://qa.example.com/karm/")
	require.NoError(t, err)
	assert.Equal(t, "https://qa.example.com/karm", u.String())
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	_, err := parseBaseURL("http://")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing host")
}

func TestNewClient_RejectsNegativeTimeout(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "127.0.0.1:1", Timeout: -time.Second})
	require.Error(t, err)
}

func TestClient_AskSendsQuestion(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/question", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"question": "What is AI?"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"Artificial Intelligence"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	require.NoError(t, err)

	got := c.Ask(context.Background(), "What is AI?")
	assert.Equal(t, Answered("Artificial Intelligence"), got)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_AskClassifiesReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantOutcome Outcome
		wantAnswer  string
		wantStatus  int
	}{
		{name: "answer", status: http.StatusOK, body: `{"answer":"42"}`, wantOutcome: OutcomeAnswered, wantAnswer: "42"},
		{name: "extra fields", status: http.StatusOK, body: `{"answer":"yes","source":"kb"}`, wantOutcome: OutcomeAnswered, wantAnswer: "yes"},
		{name: "created counts as success", status: http.StatusCreated, body: `{"answer":"ok"}`, wantOutcome: OutcomeAnswered, wantAnswer: "ok"},
		{name: "empty object", status: http.StatusOK, body: `{}`, wantOutcome: OutcomeMalformed},
		{name: "null answer", status: http.StatusOK, body: `{"answer":null}`, wantOutcome: OutcomeMalformed},
		{name: "empty answer", status: http.StatusOK, body: `{"answer":""}`, wantOutcome: OutcomeMalformed},
		{name: "numeric answer", status: http.StatusOK, body: `{"answer":7}`, wantOutcome: OutcomeMalformed},
		{name: "array body", status: http.StatusOK, body: `["answer"]`, wantOutcome: OutcomeMalformed},
		{name: "null body", status: http.StatusOK, body: `null`, wantOutcome: OutcomeMalformed},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantOutcome: OutcomeTransportFailure},
		{name: "empty body", status: http.StatusOK, body: ``, wantOutcome: OutcomeTransportFailure},
		{name: "server error", status: http.StatusInternalServerError, body: `{"answer":"ignored"}`, wantOutcome: OutcomeTransportFailure, wantStatus: 500},
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"Question cannot be empty"}`, wantOutcome: OutcomeTransportFailure, wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(Options{BaseURL: server.URL})
			require.NoError(t, err)

			got := c.Ask(context.Background(), "Hi")
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			assert.Equal(t, tt.wantAnswer, got.Answer)
			assert.EqualValues(t, 1, calls.Load(), "exactly one request, no retries")

			if tt.wantOutcome == OutcomeTransportFailure {
				require.Error(t, got.Err)
			} else {
				assert.NoError(t, got.Err)
			}
			if tt.wantStatus != 0 {
				var statusErr *StatusError
				require.True(t, errors.As(got.Err, &statusErr), "want *StatusError, got %v", got.Err)
				assert.Equal(t, tt.wantStatus, statusErr.Code)
			}
		})
	}
}

func TestClient_AskUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: url})
	require.NoError(t, err)

	got := c.Ask(context.Background(), "Hi")
	assert.Equal(t, OutcomeTransportFailure, got.Outcome)
	require.Error(t, got.Err)
	assert.Contains(t, got.Err.Error(), "execute request")
}

func TestClient_AskTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	got := c.Ask(context.Background(), "Hi")
	assert.Equal(t, OutcomeTransportFailure, got.Outcome)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_AskHonorsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"late"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := c.Ask(ctx, "Hi")
	assert.Equal(t, OutcomeTransportFailure, got.Outcome)
	assert.ErrorIs(t, got.Err, context.Canceled)
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	assert.Equal(t, OutcomeTransportFailure, c.Ask(context.Background(), "Hi").Outcome)
	_, err := c.Ping(context.Background())
	assert.Error(t, err)
	assert.Empty(t, c.BaseURL())
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(HealthResponse{Message: "Q&A Server is running!"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL + "/"})
	require.NoError(t, err)
	assert.Equal(t, server.URL, c.BaseURL())

	msg, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Q&A Server is running!", msg)
}

func TestClient_PingStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 503")
}
