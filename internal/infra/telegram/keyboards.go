package telegram

import (
	"fmt"

	"svitlo_notification_bot/internal/domain/region"
	"svitlo_notification_bot/internal/domain/schedule"

	"gopkg.in/telebot.v3"
)

// Main reply menu. Buttons are package-level so handlers can bind to them.
var (
	menu        = &telebot.ReplyMarkup{ResizeKeyboard: true}
	btnSchedule = menu.Text("⚡ Графік світла")
	btnProfile  = menu.Text("👤 Мій профіль")
	btnHelp     = menu.Text("❓ Допомога / Донат")
)

func init() {
	menu.Reply(menu.Row(btnSchedule, btnProfile), menu.Row(btnHelp))
}

// reminderChoices is the offered reminder lead-time vocabulary in minutes.
var reminderChoices = []int{5, 10, 15, 30, 60}

func inlineBtn(text, data string) telebot.InlineButton {
	return telebot.InlineButton{Text: text, Data: data}
}

func profileKeyboard(notificationsEnabled bool) *telebot.ReplyMarkup {
	notifText := "🔔 Увімкнути сповіщення про оновлення"
	if notificationsEnabled {
		notifText = "🔕 Вимкнути сповіщення про оновлення"
	}
	return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{
		{inlineBtn("🌍 Змінити область", "profile_change_area")},
		{inlineBtn("📟 Змінити черги", "profile_edit")},
		{inlineBtn("⏰ Нагадування", "profile_reminders")},
		{inlineBtn(notifText, "profile_toggle_notif")},
		{inlineBtn("🏠 Головне меню", "menu_back")},
	}}
}

func queuesKeyboard(selected, all []string) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	var row []telebot.InlineButton
	for _, q := range all {
		text := q
		if containsString(selected, q) {
			text = "✅ " + q
		}
		row = append(row, inlineBtn(text, "queue_toggle_"+q))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telebot.InlineButton{inlineBtn("⬅️ Назад до профілю", "back_profile")})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func remindersKeyboard(selectedOffsets []int) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	var row []telebot.InlineButton
	for _, m := range reminderChoices {
		text := fmt.Sprintf("за %d хв", m)
		if containsInt(selectedOffsets, m) {
			text = "✅ " + text
		}
		row = append(row, inlineBtn(text, fmt.Sprintf("reminder_toggle_%d", m)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telebot.InlineButton{inlineBtn("⬅️ Назад до профілю", "back_profile")})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func scheduleNavKeyboard(mode schedule.Mode, showingAll bool) *telebot.ReplyMarkup {
	scope := "my"
	if showingAll {
		scope = "all"
	}

	todayText, tomorrowText := "Сьогодні", "Завтра"
	if mode == schedule.ModeToday {
		todayText = "▶️ Сьогодні"
	} else {
		tomorrowText = "▶️ Завтра"
	}

	scopeText := "🌍 Показати всі черги"
	scopeData := fmt.Sprintf("nav_%s_all", mode)
	if showingAll {
		scopeText = "📟 Показати мої черги"
		scopeData = fmt.Sprintf("nav_%s_my", mode)
	}

	return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{
		{
			inlineBtn(todayText, "nav_today_"+scope),
			inlineBtn(tomorrowText, "nav_tomorrow_"+scope),
		},
		{inlineBtn(scopeText, scopeData)},
		{inlineBtn("🏠 Головне меню", "menu_back")},
	}}
}

func regionKeyboard() *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	for _, g := range region.Groups {
		rows = append(rows, []telebot.InlineButton{inlineBtn(g.Title, "region_select_"+g.Code)})
	}
	rows = append(rows, []telebot.InlineButton{inlineBtn("⬅️ Назад до профілю", "back_profile")})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func areaKeyboard(group region.Group, currentArea string) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	var row []telebot.InlineButton
	for _, a := range group.Areas {
		text := a.Title
		if a.Code == currentArea {
			text = "✅ " + text
		}
		row = append(row, inlineBtn(text, "area_select_"+a.Code))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telebot.InlineButton{inlineBtn("⬅️ До регіонів", "profile_change_area")})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsInt(list []int, n int) bool {
	for _, item := range list {
		if item == n {
			return true
		}
	}
	return false
}
