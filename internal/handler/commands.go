package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)

	// Profile selection
	case "users":
		h.showUsers(message)
	case "login":
		h.login(message, args)
	case "logout":
		h.logout(message)
	case "me", "profile":
		h.showProfile(message)

	// Attendance
	case "in", "checkin":
		h.checkIn(message)
	case "out", "checkout":
		h.checkOut(message)
	case "attendance":
		h.showAttendance(message, args)

	// Requests
	case "request":
		h.submitRequest(message, args)
	case "myrequests":
		h.showMyRequests(message)

	// Manager commands
	case "pending":
		h.showPending(message)
	case "approve":
		h.resolveRequest(message, args, true)
	case "decline":
		h.resolveRequest(message, args, false)
	case "team":
		h.showTeam(message, args)
	case "requests":
		h.showRequests(message, args)
	case "holidays":
		h.showHolidays(message)
	case "report":
		h.sendReport(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Unknown command. Use /help to see the list of commands.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	text := `👋 Welcome to TeamTime!

Check in and out, ask for holidays, sick leave or extra hours, and keep an eye on your balances.

1. See the profiles with /users
2. Pick yours with /login <id>
3. Start your day with /in and finish it with /out

Use /help for every command.`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📋 Available commands:

👤 Profile:
/users - List profiles
/login <id> - Log in as a profile
/logout - Log out
/me - Show your profile and balances

⏰ Attendance:
/in - Check in for today
/out - Check out for today
/attendance - Your attendance history

📝 Requests:
/request <type> <start> <end> [hours] [reason]
    Types: holiday, sick, earn, use, unjustified
    Dates: 2024-07-01, 01.07.2024 or 01.07
    Example: /request holiday 01.07 03.07 Summer trip
    Example: /request earn 21.05 21.05 2.5 Release night
/myrequests - Your requests, newest first

👑 Managers:
/pending - Pending requests with Approve/Decline buttons
/approve <id> - Approve a request
/decline <id> - Decline a request
/team [userId] - Balances and presence of the team
/requests [userId] - Request history
/attendance <userId> - Attendance of an employee
/holidays - Upcoming approved holidays
/report [userId] [xlsx|pdf] - Weekly attendance report`

	h.reply(message.Chat.ID, text)
}
