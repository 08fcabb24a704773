// Package channel holds the delivery adapters. The scheduler only needs
// "send this text to this user"; each adapter finds its own address in the
// user's preferences.
package channel

import (
	"errors"

	"wellmind/storage"
)

var ErrNotConfigured = errors.New("channel not configured for user")

type Sender interface {
	// Send delivers text to the user described by prefs. A failed delivery
	// is an error for the caller to log, never a reason to stop the
	// scheduler.
	Send(prefs *storage.Preferences, text string) error
}

// Registry maps channel names ("telegram", "email", "discord") to senders.
type Registry map[string]Sender
