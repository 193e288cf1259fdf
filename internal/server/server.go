package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/five82/karm/internal/answer"
)

const (
	rootMessage        = "Q&A Server is running!"
	emptyQuestionError = "Question cannot be empty"
	maxBodyBytes       = 1 << 20
	shutdownTimeout    = 5 * time.Second
)

// Server exposes an Answerer over the question API the client speaks.
type Server struct {
	answerer Answerer
	logger   *slog.Logger
	server   *http.Server
}

// New builds a server listening on addr once ListenAndServe is called.
func New(addr string, answerer Answerer, logger *slog.Logger) (*Server, error) {
	if answerer == nil {
		return nil, errors.New("server: answerer is required")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("server: invalid listen address %q: %w", addr, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{answerer: answerer, logger: logger}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler, for mounting in tests or other muxes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/question", s.handleQuestion)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("answering service listening", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("answering service stopped")
	return <-errCh
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, answer.HealthResponse{Message: rootMessage})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question *string `json:"question"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, answer.ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	if req.Question == nil {
		writeJSON(w, http.StatusUnprocessableEntity, answer.ErrorResponse{Detail: "field required: question"})
		return
	}
	question := strings.TrimSpace(*req.Question)
	if question == "" {
		writeJSON(w, http.StatusBadRequest, answer.ErrorResponse{Detail: emptyQuestionError})
		return
	}

	text, err := s.answerer.Answer(r.Context(), question)
	if err != nil {
		s.logger.Error("answer failed", "question", question, "error", err)
		writeJSON(w, http.StatusInternalServerError, answer.ErrorResponse{Detail: "could not answer the question"})
		return
	}
	writeJSON(w, http.StatusOK, answer.AnswerResponse{Answer: text})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
