package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wellmind/storage"
)

// Discord posts through a per-user webhook URL, so it needs no shared
// credentials at all.
type Discord struct {
	client *http.Client
}

func NewDiscord() *Discord {
	return &Discord{client: &http.Client{Timeout: 10 * time.Second}}
}

func (d *Discord) Send(prefs *storage.Preferences, text string) error {
	if prefs.DiscordWebhook == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return err
	}

	resp, err := d.client.Post(prefs.DiscordWebhook, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
