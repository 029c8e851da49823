package handler

import (
	"fmt"
	"strings"

	"teamtime-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) showUsers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	users, err := h.userService.ListUsers()
	if err != nil {
		h.replyError(chatID, "list users", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 Profiles:\n")
	for _, u := range users {
		icon := "👤"
		if u.IsManager() {
			icon = "👑"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s - %s (%s)", icon, u.ID, u.Name, u.Role))
	}
	sb.WriteString("\n\nUse /login <id> to pick a profile.")

	h.reply(chatID, sb.String())
}

func (h *Handler) login(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	userID := strings.TrimSpace(args)
	if userID == "" {
		h.reply(chatID, "❌ Usage: /login <id>\nUse /users to see the profiles.")
		return
	}

	user, err := h.userService.Login(service.ChatSessionKey(chatID), userID)
	if err != nil {
		h.replyError(chatID, "log in", err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Logged in as %s (%s).", user.Name, user.Role))
}

func (h *Handler) logout(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := h.userService.Logout(service.ChatSessionKey(chatID)); err != nil {
		h.replyError(chatID, "log out", err)
		return
	}

	h.reply(chatID, "👋 Logged out.")
}

// showProfile renders the employee or manager dashboard of the current user.
func (h *Handler) showProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	text := h.userService.FormatUserInfo(user)

	if user.IsManager() {
		stats, err := h.viewService.DashboardStats()
		if err != nil {
			h.replyError(chatID, "load the dashboard", err)
			return
		}
		text += "\n\n" + service.FormatDashboardStats(stats)
	} else {
		today, err := h.attendanceService.TodayRecord(user.ID)
		if err != nil {
			h.replyError(chatID, "load today's attendance", err)
			return
		}
		if today != nil {
			text += "\n\n📅 Today\n" + today.FormatTime()
		} else {
			text += "\n\n📅 Today\nNot checked in yet. Use /in."
		}

		recent, err := h.viewService.RecentRequests(user.ID, service.RecentRequestsLimit)
		if err != nil {
			h.replyError(chatID, "load your requests", err)
			return
		}
		text += "\n\n" + service.FormatRequestList("📝 Recent requests", recent)
	}

	h.reply(chatID, text)
}
