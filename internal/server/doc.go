// Package server is the bundled answering service started by `karm serve`.
//
// It speaks the same two endpoints the client expects:
//
//	GET  /               {"message": "Q&A Server is running!"}
//	POST /api/question   {"question": "..."} -> {"answer": "..."}
//
// A blank question is rejected with 400 and {"detail": "Question cannot be
// empty"}. A body that cannot be decoded, or that lacks the question field,
// gets 422. Answers come from an Answerer; KnowledgeBase is the default and
// is loaded from a TOML answers file (see LoadKnowledgeBase).
//
// Every request is logged through the configured slog.Logger.
package server
