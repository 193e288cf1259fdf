// Package config loads Karm's TOML configuration.
//
// # Overview
//
// One file configures both halves of the program: the terminal client
// (where the answering service lives, how often to check it, which palette
// to start with, where to log) and the bundled answering service started by
// `karm serve`.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file, ~/.config/karm/config.toml unless a path is given;
//     a missing file is not an error
//  3. Environment: KARM_BASE_URL and KARM_LOG_FILE, optionally seeded from a
//     .env file via LoadDotEnv
//  4. Command-line flags via Config.WithOverrides
//
// Blank values at any layer fall through to the previous one.
//
// # File Format
//
//	base_url = "http://127.0.0.1:5000"
//	request_timeout = "0s"   # 0 means no timeout
//	poll_interval = "5s"     # 0 disables health checks
//	theme = "light"          # or "dark"
//	log_file = "~/.local/state/karm/karm.log"
//
//	[server]
//	addr = ":5000"
//	answers_file = "~/.config/karm/answers.toml"
//
// A base_url without a scheme gets "http://". Paths beginning with "~" are
// expanded against the user's home directory and made absolute.
//
// # Validation
//
// Load and WithOverrides validate the final struct with go-playground
// validator. Every violation is reported in one error using the English
// translations and the TOML key names, e.g.
//
//	invalid config: theme must be one of [light dark]
package config
