// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"time"

	"svitlo_notification_bot/internal/domain/region"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter delivers outgoing messages via gopkg.in/telebot.v3. It is
// the app layer's Notifier implementation.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// NotifyScheduleChanged tells a subscriber their region's published schedule
// differs from the last observed one.
func (tba *TelebotAdapter) NotifyScheduleChanged(userID int64, areaCode string) error {
	text := fmt.Sprintf(
		"🚨 <b>Графік оновлено!</b>\nОбласть: <b>%s</b>\n\nПеревірте меню <b>⚡ Графік світла</b>.",
		region.Title(areaCode))
	return tba.SendMessage(userID, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
}

// NotifyReminderDue warns a subscriber about an outage starting soon.
func (tba *TelebotAdapter) NotifyReminderDue(userID int64, queueID string, intervalStart time.Time, offsetMinutes int) error {
	text := fmt.Sprintf(
		"💡 <b>СКОРО ВІДКЛЮЧЕННЯ</b>\nЧерга <b>%s</b>\nПочаток о <b>%s</b>\nНагадування за <b>%d хв</b>.",
		queueID, intervalStart.Format("15:04"), offsetMinutes)
	return tba.SendMessage(userID, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
}
