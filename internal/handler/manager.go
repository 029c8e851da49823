package handler

import (
	"bytes"
	"fmt"
	"strings"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/report"
	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) showPending(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	pending, err := h.viewService.PendingRequests()
	if err != nil {
		h.replyError(chatID, "load pending requests", err)
		return
	}
	if len(pending) == 0 {
		h.reply(chatID, "🎉 No pending requests.")
		return
	}

	h.reply(chatID, fmt.Sprintf("⏳ Pending requests: %d", len(pending)))
	for _, req := range pending {
		msg := tgbotapi.NewMessage(chatID, service.FormatRequest(req))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Approve", callbackApprove+req.ID),
				tgbotapi.NewInlineKeyboardButtonData("❌ Decline", callbackDecline+req.ID),
			),
		)
		if _, err := h.bot.Send(msg); err != nil {
			logrus.WithError(err).WithField("request_id", req.ID).Error("Failed to send pending request")
		}
	}
}

func (h *Handler) resolveRequest(message *tgbotapi.Message, args string, approve bool) {
	chatID := message.Chat.ID

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	requestID := strings.TrimSpace(args)
	if requestID == "" {
		h.reply(chatID, "❌ Usage: /approve <id> or /decline <id>\nUse /pending to see the ids.")
		return
	}

	decision := models.RequestStatusDeclined
	if approve {
		decision = models.RequestStatusApproved
	}
	_ = h.adjudicate(chatID, requestID, decision)
}

// adjudicate resolves the request and reports the outcome to the chat. The
// error is returned after it has been shown.
func (h *Handler) adjudicate(chatID int64, requestID, decision string) error {
	req, err := h.requestService.Adjudicate(requestID, decision)
	if err != nil {
		h.replyError(chatID, "resolve the request", err)
		return err
	}

	text := fmt.Sprintf("%s Request %s.\n\n%s", service.StatusIcon(req.Status), req.Status, service.FormatRequest(req))
	if req.Status == models.RequestStatusApproved {
		if user, err := h.userService.GetUser(req.UserID); err == nil {
			text += fmt.Sprintf("\n\n💼 %s now has %d holiday days, %sh extra hours and %d sick days.",
				user.Name, user.HolidayBalance, service.FormatHours(user.ExtraHoursWallet), user.SickDaysTaken)
		}
	}
	h.reply(chatID, text)
	return nil
}

func (h *Handler) showTeam(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	team, err := h.viewService.TeamOverview(strings.TrimSpace(args))
	if err != nil {
		h.replyError(chatID, "load the team", err)
		return
	}

	h.reply(chatID, service.FormatTeamOverview(team))
}

func (h *Handler) showRequests(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	filter := repository.RequestFilter{UserID: strings.TrimSpace(args)}
	title := "📝 All requests"
	if filter.UserID != "" {
		user, err := h.userService.GetUser(filter.UserID)
		if err != nil {
			h.replyError(chatID, "load the user", err)
			return
		}
		title = "📝 Requests of " + user.Name
	}

	requests, err := h.requestService.ListRequests(filter)
	if err != nil {
		h.replyError(chatID, "load requests", err)
		return
	}

	h.reply(chatID, service.FormatRequestList(title, requests))
}

func (h *Handler) showHolidays(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	holidays, err := h.viewService.UpcomingApprovedHolidays()
	if err != nil {
		h.replyError(chatID, "load holidays", err)
		return
	}

	h.reply(chatID, service.FormatHolidays(holidays))
}

// sendReport sends the weekly attendance report as a document. Arguments
// are an optional user id and an optional format, in any order.
func (h *Handler) sendReport(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	manager, ok := h.requireManager(chatID)
	if !ok {
		return
	}

	userID, format := manager.ID, report.FormatXLSX
	for _, arg := range strings.Fields(args) {
		switch strings.ToLower(arg) {
		case report.FormatXLSX, report.FormatPDF:
			format = strings.ToLower(arg)
		default:
			userID = arg
		}
	}

	week, err := h.viewService.WeeklyReport(userID)
	if err != nil {
		h.replyError(chatID, "build the report", err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, week, format); err != nil {
		h.replyError(chatID, "render the report", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  week.Filename(format),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 %s, %s to %s. Total: %s", week.UserName, week.From, week.To, week.Total())
	if _, err := h.bot.Send(doc); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send report")
		h.reply(chatID, "❌ Failed to send the report: "+err.Error())
	}
}
