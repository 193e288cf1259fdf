// Package logtail reads the tail of Karm's log file for `karm logs`.
//
// The terminal UI owns the screen, so it writes its slog records to a file
// instead. Read returns the last N lines of that file using a ring buffer,
// so memory stays proportional to N rather than to the file size. Colorize
// highlights WARN, ERROR and DEBUG records produced by the slog text handler.
package logtail
