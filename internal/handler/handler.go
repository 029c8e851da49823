package handler

import (
	"errors"
	"strings"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/models"
	"teamtime-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	callbackApprove = "approve_"
	callbackDecline = "decline_"
)

// Sender is the part of *tgbotapi.BotAPI the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot               Sender
	userService       *service.UserService
	requestService    *service.RequestService
	attendanceService *service.AttendanceService
	viewService       *service.ViewService
	clock             clock.Clock
}

func NewHandler(
	bot Sender,
	userService *service.UserService,
	requestService *service.RequestService,
	attendanceService *service.AttendanceService,
	viewService *service.ViewService,
	clk clock.Clock,
) *Handler {
	return &Handler{
		bot:               bot,
		userService:       userService,
		requestService:    requestService,
		attendanceService: attendanceService,
		viewService:       viewService,
		clock:             clk,
	}
}

// HandleUpdates processes updates one at a time until the channel closes.
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		h.HandleUpdate(update)
	}
}

func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(update.Message)
}

func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer h.bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	var requestID, decision string
	switch {
	case strings.HasPrefix(data, callbackApprove):
		requestID, decision = strings.TrimPrefix(data, callbackApprove), models.RequestStatusApproved
	case strings.HasPrefix(data, callbackDecline):
		requestID, decision = strings.TrimPrefix(data, callbackDecline), models.RequestStatusDeclined
	default:
		logrus.WithField("data", data).Warn("Unknown callback")
		return
	}

	if _, ok := h.requireManager(chatID); !ok {
		return
	}

	err := h.adjudicate(chatID, requestID, decision)
	if err != nil && !errors.Is(err, service.ErrInvalidStateTransition) {
		return
	}

	// The request is resolved, so its Approve/Decline buttons go away.
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.bot.Request(editMsg)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}

	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	logrus.Infof("[%s] %s", username, message.Text)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "🤖 I only understand commands. Use /help to see them.")
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

// replyError turns a service error into a message for the user.
func (h *Handler) replyError(chatID int64, action string, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		h.reply(chatID, "❌ "+verr.Error())
	case errors.Is(err, service.ErrNotFound):
		h.reply(chatID, "❌ Not found: "+err.Error())
	case errors.Is(err, service.ErrInvalidStateTransition):
		h.reply(chatID, "⚠️ This request has already been resolved.")
	default:
		logrus.WithError(err).WithField("chat_id", chatID).Errorf("Failed to %s", action)
		h.reply(chatID, "❌ Failed to "+action+": "+err.Error())
	}
}

// currentUser returns the profile selected in this chat. It tells the
// user to log in and returns false when there is none.
func (h *Handler) currentUser(chatID int64) (*models.User, bool) {
	user, err := h.userService.Current(service.ChatSessionKey(chatID))
	if err != nil {
		h.replyError(chatID, "load your session", err)
		return nil, false
	}
	if user == nil {
		h.reply(chatID, "🔐 You are not logged in. Use /users to see profiles and /login <id> to pick one.")
		return nil, false
	}
	return user, true
}

func (h *Handler) requireManager(chatID int64) (*models.User, bool) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return nil, false
	}
	if !user.IsManager() {
		h.reply(chatID, "❌ Access denied. This command is for managers only.")
		return nil, false
	}
	return user, true
}
