package handler

import (
	"fmt"
	"strings"

	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const attendanceHistoryLimit = 14

func (h *Handler) checkIn(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckIn(user.ID)
	if err != nil {
		h.replyError(chatID, "check in", err)
		return
	}

	if record.HasCheckOut() {
		h.reply(chatID, fmt.Sprintf("ℹ️ Your day %s is already recorded.\n%s", record.Date, record.FormatTime()))
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Checked in!\n\n📅 %s\n%s", record.Date, record.FormatTime()))
}

func (h *Handler) checkOut(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	record, err := h.attendanceService.CheckOut(user.ID)
	if err != nil {
		h.replyError(chatID, "check out", err)
		return
	}
	if record == nil {
		h.reply(chatID, "⚠️ You have not checked in today. Use /in first.")
		return
	}

	h.reply(chatID, fmt.Sprintf("🏁 Checked out!\n\n📅 %s\n%s\n⌛ Worked: %s", record.Date, record.FormatTime(), record.Duration()))
}

// showAttendance lists the caller's records. Managers may pass a user id.
func (h *Handler) showAttendance(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	target := user
	if userID := strings.TrimSpace(args); userID != "" && userID != user.ID {
		if !user.IsManager() {
			h.reply(chatID, "❌ Access denied. Only managers can view other people's attendance.")
			return
		}
		other, err := h.userService.GetUser(userID)
		if err != nil {
			h.replyError(chatID, "load the user", err)
			return
		}
		target = other
	}

	records, err := h.attendanceService.ListAttendance(repository.AttendanceFilter{
		UserID: target.ID,
		Limit:  attendanceHistoryLimit,
	})
	if err != nil {
		h.replyError(chatID, "load attendance", err)
		return
	}

	h.reply(chatID, service.FormatAttendanceList(fmt.Sprintf("🗓 Attendance of %s", target.Name), records))
}
