// Package app provides the orchestration layer for Karm.
//
// # Overview
//
// This package wires together configuration, the answer client, the screen
// state and the UI. It is the composition root for every command: the
// terminal UI (Run), the one-shot question (Ask) and the bundled answering
// service (Serve).
//
// # Components
//
//   - app.go: LoadConfig, Run, Ask and Serve
//   - poller.go: background health checks with exponential backoff
//   - logging.go: slog setup for the log file and stderr
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()        .env, TOML, env vars, flags
//	       ├─────> OpenLogFile()       slog to log_file (the UI owns the terminal)
//	       ├─────> answer.NewClient()  HTTP client for the answering service
//	       ├─────> state.NewStore()    Per-screen state container
//	       ├─────> StartPoller()       Health checks (skipped when poll_interval = 0)
//	       └─────> ui.Run()            Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> client.Ping()     GET /            │
//	│  ├─> store.UpdateHealth()               │
//	│  └─> wait interval * 2^failures (≤30s)  │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller checks the service immediately and then every poll_interval
// (default 5 seconds). After a failed check the wait doubles per consecutive
// failure, capped at 30 seconds, and returns to the base interval after the
// next success. Health checks never touch the submission phase; a failed
// question and an offline status line are independent.
//
// # Error Handling
//
// Fatal errors (returned to the CLI):
//   - Invalid configuration file, environment or flags
//   - Unusable base URL
//   - Log file that cannot be created
//
// Recoverable errors (logged, the program continues):
//   - Failed health checks
//   - Failed or malformed answers, which the controller turns into the
//     fixed on-screen messages
package app
