// Package ui provides the Karm terminal screen, built on Bubble Tea.
//
// # Architecture Overview
//
// The screen is a single Bubble Tea model that renders a state.Store
// snapshot and turns key presses into calls on the store and its
// submission controller. The model never talks to the network itself.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and commands, Run
//   - view.go: header, server status line, question box, submit button,
//     answer card and footer
//   - keys.go: key bindings and their help text
//   - theme.go: Lip Gloss styles derived from a state.Palette
//   - modal.go: blocking notices (the blank-question error)
//   - help.go: keyboard shortcut overlay
//
// # Submission Flow
//
//  1. ctrl+s calls Controller.Begin on the update goroutine
//  2. A blank question opens the "Please enter a question" notice and stops
//  3. Otherwise the phase is InFlight and a tea.Cmd runs Controller.Exchange
//     in the background while the button shows a spinner
//  4. The resulting answerMsg is fed to Controller.Resolve on the update
//     goroutine and the answer card is re-rendered
//
// ctrl+l clears the question and answer without cancelling an outstanding
// request; ctrl+x cancels it and drops its result.
//
// # Refresh
//
// A tick re-reads the store every PollTick (default one second) so the
// server status line follows the background health poller.
package ui
