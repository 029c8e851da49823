package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// typeAliases maps what people type to request types.
var typeAliases = map[string]string{
	"holiday":     models.RequestTypeHoliday,
	"vacation":    models.RequestTypeHoliday,
	"sick":        models.RequestTypeSickLeave,
	"sick-leave":  models.RequestTypeSickLeave,
	"earn":        models.RequestTypeExtraHoursEarning,
	"overtime":    models.RequestTypeExtraHoursEarning,
	"use":         models.RequestTypeExtraHoursUsage,
	"unjustified": models.RequestTypeNotJustified,
}

func init() {
	for _, t := range models.RequestTypes {
		typeAliases[t] = t
	}
}

const requestUsage = "❌ Usage: /request <type> <start> <end> [hours] [reason]\n" +
	"Types: holiday, sick, earn, use, unjustified\n" +
	"Example: /request holiday 01.07 03.07 Summer trip"

func (h *Handler) submitRequest(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	input, err := parseRequestArgs(args, h.clock.Now())
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\n\n"+requestUsage)
		return
	}
	input.UserID = user.ID

	req, err := h.requestService.Submit(input)
	if err != nil {
		h.replyError(chatID, "submit the request", err)
		return
	}

	h.reply(chatID, "📨 Request submitted and waiting for a manager.\n\n"+service.FormatRequest(req))
}

func (h *Handler) showMyRequests(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	requests, err := h.requestService.ListRequests(repository.RequestFilter{UserID: user.ID})
	if err != nil {
		h.replyError(chatID, "load your requests", err)
		return
	}

	h.reply(chatID, service.FormatRequestList("📝 Your requests", requests))
}

// parseRequestArgs reads "<type> <start> <end> [hours] [reason...]". Hours
// are read only for extra-hours types; everything after is the reason.
func parseRequestArgs(args string, today time.Time) (service.SubmitRequestInput, error) {
	var in service.SubmitRequestInput

	fields := strings.Fields(args)
	if len(fields) < 3 {
		return in, fmt.Errorf("type, start date and end date are required")
	}

	requestType, ok := typeAliases[strings.ToLower(fields[0])]
	if !ok {
		return in, fmt.Errorf("unknown request type %q", fields[0])
	}
	in.Type = requestType

	start, err := parseDate(fields[1], today)
	if err != nil {
		return in, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(fields[2], today)
	if err != nil {
		return in, fmt.Errorf("end date: %w", err)
	}
	in.StartDate = models.FormatDate(start)
	in.EndDate = models.FormatDate(end)

	rest := fields[3:]
	if models.IsExtraHoursType(requestType) {
		if len(rest) == 0 {
			return in, fmt.Errorf("hours are required for %s", requestType)
		}
		hours, err := strconv.ParseFloat(strings.Replace(rest[0], ",", ".", 1), 64)
		if err != nil {
			return in, fmt.Errorf("invalid hours %q", rest[0])
		}
		in.Hours = &hours
		rest = rest[1:]
	}

	in.Reason = strings.Join(rest, " ")
	return in, nil
}

// parseDate accepts 2024-07-01, 01.07.2024, 01-07-2024 and 01.07. A date
// without a year falls in the year of today.
func parseDate(dateStr string, today time.Time) (time.Time, error) {
	formats := []string{
		models.DateLayout,
		"02.01.2006",
		"02-01-2006",
		"02.01",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			if !strings.Contains(format, "2006") {
				dated := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				if dated.Day() != t.Day() {
					return time.Time{}, fmt.Errorf("invalid date %q: no such day in %d", dateStr, today.Year())
				}
				t = dated
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, DD.MM.YYYY or DD.MM", dateStr)
}
