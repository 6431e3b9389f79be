package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"svitlo_notification_bot/internal/app"
	"svitlo_notification_bot/internal/domain/region"
	"svitlo_notification_bot/internal/domain/schedule"
	"svitlo_notification_bot/internal/domain/user"
	idb "svitlo_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterHandlers wires the bot's menu, profile and schedule flows.
func RegisterHandlers(
	ctx context.Context,
	b *telebot.Bot,
	users user.Repository,
	schedules *app.ScheduleService,
	baseLogger *logrus.Entry,
) {
	h := &handlers{ctx: ctx, users: users, schedules: schedules, logger: baseLogger}

	b.Handle("/start", h.start)
	b.Handle(&btnSchedule, h.showSchedule)
	b.Handle(&btnProfile, h.showProfile)
	b.Handle(&btnHelp, h.showHelp)
	b.Handle(telebot.OnCallback, h.dispatchCallback)
}

type handlers struct {
	ctx       context.Context
	users     user.Repository
	schedules *app.ScheduleService
	logger    *logrus.Entry
}

// profileOf loads the sender's profile, creating a default one on first
// contact.
func (h *handlers) profileOf(senderID int64) (*user.Profile, error) {
	profile, err := h.users.Get(h.ctx, senderID)
	if err == nil {
		return profile, nil
	}
	if err != idb.ErrUserNotFound {
		return nil, err
	}

	profile = user.Default(h.schedules.DefaultArea())
	if err := h.users.Save(h.ctx, senderID, profile); err != nil {
		return nil, err
	}
	h.logger.WithField("user_id", senderID).Info("Created default profile")
	return profile, nil
}

func (h *handlers) start(c telebot.Context) error {
	h.logger.WithField("sender_id", c.Sender().ID).Info("Processing /start command")
	if _, err := h.profileOf(c.Sender().ID); err != nil {
		h.logger.WithError(err).Error("Could not prepare profile on /start")
	}
	text := "Привіт! Я СвітлоБот ⚡\n\n" +
		"Я допоможу дізнатися, коли у твоєму районі буде світло чи темрява.\n" +
		"Для початку роботи скористайся кнопками внизу 👇"
	return c.Send(text, menu)
}

func (h *handlers) showSchedule(c telebot.Context) error {
	profile, err := h.profileOf(c.Sender().ID)
	if err != nil {
		h.logger.WithError(err).Error("Could not load profile for schedule view")
		return c.Send("Сталася помилка. Спробуйте пізніше.")
	}
	return h.renderSchedule(c, profile, schedule.ModeToday, false, false)
}

func (h *handlers) renderSchedule(c telebot.Context, profile *user.Profile, mode schedule.Mode, showAll, edit bool) error {
	msg := h.schedules.BuildView(profile.Area, profile.Queues, mode, showAll, "")
	kb := scheduleNavKeyboard(mode, showAll)
	if edit {
		return c.Edit(msg.Text, kb, telebot.ModeHTML)
	}
	return c.Send(msg.Text, kb, telebot.ModeHTML)
}

func profileText(senderID int64, profile *user.Profile) string {
	queues := "не вибрані"
	if len(profile.Queues) > 0 {
		queues = strings.Join(profile.Queues, ", ")
	}
	return fmt.Sprintf(
		"👤 <b>Ваш профіль</b>\n\nID: <code>%d</code>\nОбласть: <b>%s</b>\n📟 Черги: %s",
		senderID, region.Title(profile.Area), queues)
}

func (h *handlers) showProfile(c telebot.Context) error {
	profile, err := h.profileOf(c.Sender().ID)
	if err != nil {
		h.logger.WithError(err).Error("Could not load profile")
		return c.Send("Сталася помилка. Спробуйте пізніше.")
	}
	return c.Send(profileText(c.Sender().ID, profile), profileKeyboard(profile.NotificationsEnabled), telebot.ModeHTML)
}

func (h *handlers) showHelp(c telebot.Context) error {
	text := "❓ <b>Допомога</b>\n\n" +
		"⚡ <b>Графік світла</b> — графік відключень для ваших черг на сьогодні та завтра.\n" +
		"👤 <b>Мій профіль</b> — вибір області, черг та нагадувань.\n" +
		"🔔 Сповіщення повідомлять, коли обленерго оновить графік.\n" +
		"⏰ Нагадування попередять за вибраний час до початку відключення.\n\n" +
		"Бот безкоштовний. Підтримати розробника можна донатом на ЗСУ 🇺🇦"
	return c.Send(text, menu, telebot.ModeHTML)
}

// dispatchCallback routes inline-keyboard callbacks by their data payload.
func (h *handlers) dispatchCallback(c telebot.Context) error {
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	senderID := c.Sender().ID
	logCtx := h.logger.WithFields(logrus.Fields{"sender_id": senderID, "callback": data})

	profile, err := h.profileOf(senderID)
	if err != nil {
		logCtx.WithError(err).Error("Could not load profile for callback")
		return c.Respond(&telebot.CallbackResponse{Text: "Сталася помилка."})
	}

	switch {
	case data == "menu_back":
		_ = c.Delete()
		if err := c.Send("Головне меню 👇", menu); err != nil {
			return err
		}
		return c.Respond()

	case data == "back_profile":
		if err := c.Edit(profileText(senderID, profile), profileKeyboard(profile.NotificationsEnabled), telebot.ModeHTML); err != nil {
			return err
		}
		return c.Respond()

	case data == "profile_edit":
		all := h.schedules.QueuesFor(profile.Area)
		if len(all) == 0 {
			return c.Respond(&telebot.CallbackResponse{Text: "Для цієї області ще немає графіка."})
		}
		if err := c.Edit("Оберіть ваші черги:", queuesKeyboard(profile.Queues, all)); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "queue_toggle_"):
		return h.toggleQueue(c, logCtx, profile, strings.TrimPrefix(data, "queue_toggle_"))

	case data == "profile_toggle_notif":
		profile.NotificationsEnabled = !profile.NotificationsEnabled
		if err := h.users.Save(h.ctx, senderID, profile); err != nil {
			logCtx.WithError(err).Error("Could not save notifications toggle")
			return c.Respond(&telebot.CallbackResponse{Text: "Сталася помилка."})
		}
		if err := c.Edit(profileText(senderID, profile), profileKeyboard(profile.NotificationsEnabled), telebot.ModeHTML); err != nil {
			return err
		}
		return c.Respond(&telebot.CallbackResponse{Text: "Збережено!"})

	case data == "profile_reminders":
		if err := c.Edit("⏰ Оберіть, за скільки хвилин попереджати про відключення:", remindersKeyboard(profile.ReminderOffsets)); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "reminder_toggle_"):
		return h.toggleReminder(c, logCtx, profile, strings.TrimPrefix(data, "reminder_toggle_"))

	case data == "profile_change_area":
		if err := c.Edit("Оберіть регіон:", regionKeyboard()); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "region_select_"):
		group, ok := region.GroupByCode(strings.TrimPrefix(data, "region_select_"))
		if !ok {
			return c.Respond(&telebot.CallbackResponse{Text: "Невідомий регіон."})
		}
		if err := c.Edit("Оберіть область:", areaKeyboard(group, profile.Area)); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "area_select_"):
		return h.selectArea(c, logCtx, profile, strings.TrimPrefix(data, "area_select_"))

	case strings.HasPrefix(data, "nav_"):
		return h.navigateSchedule(c, logCtx, profile, data)
	}

	logCtx.Warn("Unhandled callback")
	return c.Respond(&telebot.CallbackResponse{Text: "Невідома дія."})
}

func (h *handlers) toggleQueue(c telebot.Context, logCtx *logrus.Entry, profile *user.Profile, queueID string) error {
	all := h.schedules.QueuesFor(profile.Area)
	if !containsString(all, queueID) {
		return c.Respond(&telebot.CallbackResponse{Text: "Невідома черга."})
	}

	if containsString(profile.Queues, queueID) {
		kept := profile.Queues[:0]
		for _, q := range profile.Queues {
			if q != queueID {
				kept = append(kept, q)
			}
		}
		profile.Queues = kept
	} else {
		profile.Queues = append(profile.Queues, queueID)
		sort.Strings(profile.Queues)
	}

	if err := h.users.Save(h.ctx, c.Sender().ID, profile); err != nil {
		logCtx.WithError(err).Error("Could not save queue toggle")
		return c.Respond(&telebot.CallbackResponse{Text: "Сталася помилка."})
	}

	if _, err := c.Bot().EditReplyMarkup(c.Message(), queuesKeyboard(profile.Queues, all)); err != nil {
		logCtx.WithError(err).Warn("Could not refresh queues keyboard")
	}
	return c.Respond(&telebot.CallbackResponse{Text: "Збережено!"})
}

func (h *handlers) toggleReminder(c telebot.Context, logCtx *logrus.Entry, profile *user.Profile, rawMinutes string) error {
	minutes, err := strconv.Atoi(rawMinutes)
	if err != nil || !containsInt(reminderChoices, minutes) {
		return c.Respond(&telebot.CallbackResponse{Text: "Невідоме нагадування."})
	}

	if containsInt(profile.ReminderOffsets, minutes) {
		kept := profile.ReminderOffsets[:0]
		for _, m := range profile.ReminderOffsets {
			if m != minutes {
				kept = append(kept, m)
			}
		}
		profile.ReminderOffsets = kept
	} else {
		profile.ReminderOffsets = append(profile.ReminderOffsets, minutes)
		sort.Ints(profile.ReminderOffsets)
	}

	if err := h.users.Save(h.ctx, c.Sender().ID, profile); err != nil {
		logCtx.WithError(err).Error("Could not save reminder toggle")
		return c.Respond(&telebot.CallbackResponse{Text: "Сталася помилка."})
	}

	if _, err := c.Bot().EditReplyMarkup(c.Message(), remindersKeyboard(profile.ReminderOffsets)); err != nil {
		logCtx.WithError(err).Warn("Could not refresh reminders keyboard")
	}
	return c.Respond(&telebot.CallbackResponse{Text: "Збережено!"})
}

func (h *handlers) selectArea(c telebot.Context, logCtx *logrus.Entry, profile *user.Profile, areaCode string) error {
	if !region.Known(areaCode) {
		return c.Respond(&telebot.CallbackResponse{Text: "Невідома область."})
	}

	if profile.Area != areaCode {
		profile.Area = areaCode
		// Queue IDs are area-specific, so a new area starts clean.
		profile.Queues = []string{}
		if err := h.users.Save(h.ctx, c.Sender().ID, profile); err != nil {
			logCtx.WithError(err).Error("Could not save area change")
			return c.Respond(&telebot.CallbackResponse{Text: "Сталася помилка."})
		}
	}

	if err := c.Edit(profileText(c.Sender().ID, profile), profileKeyboard(profile.NotificationsEnabled), telebot.ModeHTML); err != nil {
		return err
	}
	return c.Respond(&telebot.CallbackResponse{Text: "Область змінено!"})
}

func (h *handlers) navigateSchedule(c telebot.Context, logCtx *logrus.Entry, profile *user.Profile, data string) error {
	parts := strings.Split(data, "_") // nav_<mode>_<scope>
	if len(parts) != 3 {
		logCtx.Warn("Malformed schedule navigation callback")
		return c.Respond(&telebot.CallbackResponse{Text: "Невідома дія."})
	}

	mode := schedule.ModeToday
	if parts[1] == string(schedule.ModeTomorrow) {
		mode = schedule.ModeTomorrow
	}
	showAll := parts[2] == "all"

	if err := h.renderSchedule(c, profile, mode, showAll, true); err != nil {
		// Telegram rejects edits that change nothing; not worth surfacing.
		logCtx.WithError(err).Debug("Schedule navigation edit failed")
	}
	return c.Respond()
}
