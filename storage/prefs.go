package storage

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const prefsFile = "preferences.json"

// Preferences is one user's account document: where they live (timezone),
// how to reach them, and which features are switched on.
type Preferences struct {
	Timezone             string   `json:"timezone" validate:"required,iana_tz"`
	Email                string   `json:"email" validate:"omitempty,email"`
	TelegramChatID       int64    `json:"telegram_chat_id"`
	DiscordWebhook       string   `json:"discord_webhook" validate:"omitempty,url"`
	Channels             []string `json:"channels" validate:"dive,oneof=email telegram discord"`
	Categories           []string `json:"categories"`
	CheckinEnabled       bool     `json:"checkin_enabled"`
	TaskRemindersEnabled bool     `json:"task_reminders_enabled"`
}

// Preferences loads a user's account document.
func (s *Store) Preferences(user string) (*Preferences, error) {
	var p Preferences
	if err := s.loadJSON(user, prefsFile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPreferences validates and saves a user's account document. Validation
// failures block the save and are surfaced to the caller.
func (s *Store) SetPreferences(user string, p *Preferences) error {
	if err := s.validate.Struct(p); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			return err
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.saveJSON(user, prefsFile, p)
}
