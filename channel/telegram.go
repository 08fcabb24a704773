package channel

import (
	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wellmind/storage"
)

type Telegram struct {
	bot *tg.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	b, err := tg.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &Telegram{bot: b}, nil
}

func (t *Telegram) Send(prefs *storage.Preferences, text string) error {
	if prefs.TelegramChatID == 0 {
		return ErrNotConfigured
	}
	_, err := t.bot.Send(tg.NewMessage(prefs.TelegramChatID, text))
	return err
}
