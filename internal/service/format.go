package service

import (
	"fmt"
	"strconv"
	"strings"

	"teamtime-bot/internal/models"
)

// FormatHours renders hours without trailing zeros: 4, 2.5, -1.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func StatusIcon(status string) string {
	switch status {
	case models.RequestStatusApproved:
		return "✅"
	case models.RequestStatusDeclined:
		return "❌"
	}
	return "⏳"
}

// FormatRequest renders one request as a short block.
func FormatRequest(req *models.TimeRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s", StatusIcon(req.Status), req.TypeLabel()))
	if req.IsExtraHours() {
		sb.WriteString(fmt.Sprintf(" (%sh)", FormatHours(req.HoursValue())))
	}
	sb.WriteString("\n")

	if req.StartDate == req.EndDate {
		sb.WriteString(fmt.Sprintf("📅 %s\n", req.StartDate))
	} else {
		sb.WriteString(fmt.Sprintf("📅 %s → %s\n", req.StartDate, req.EndDate))
	}
	sb.WriteString(fmt.Sprintf("👤 %s\n", req.UserName))
	if req.Reason != "" {
		sb.WriteString(fmt.Sprintf("💬 %s\n", req.Reason))
	}
	sb.WriteString(fmt.Sprintf("🆔 %s", req.ID))

	return sb.String()
}

func FormatRequestList(title string, requests []*models.TimeRequest) string {
	if len(requests) == 0 {
		return title + "\n\nNo requests."
	}

	blocks := make([]string, 0, len(requests))
	for _, req := range requests {
		blocks = append(blocks, FormatRequest(req))
	}
	return title + "\n\n" + strings.Join(blocks, "\n\n")
}

func FormatAttendanceList(title string, records []*models.AttendanceRecord) string {
	if len(records) == 0 {
		return title + "\n\nNo attendance records."
	}

	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("\n📅 %s\n%s\n⌛ %s\n", r.Date, r.FormatTime(), r.Duration()))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatDashboardStats(stats *DashboardStats) string {
	return fmt.Sprintf("📊 Team dashboard\n\n👥 Staff present today: %d / %d\n⏳ Pending requests: %d",
		stats.PresentToday, stats.TotalEmployees, stats.PendingRequests)
}

func FormatTeamOverview(team []TeamMember) string {
	if len(team) == 0 {
		return "👥 Team overview\n\nNo employees."
	}

	var sb strings.Builder
	sb.WriteString("👥 Team overview\n")
	for _, m := range team {
		presence := "⚪️ Absent"
		if m.PresentToday {
			presence = "🟢 Present"
		}
		sb.WriteString(fmt.Sprintf("\n%s (%s) %s\n🏖 %d days | ⏱ %sh | 🤒 %d sick days\n",
			m.User.Name, m.User.ID, presence,
			m.User.HolidayBalance, FormatHours(m.User.ExtraHoursWallet), m.User.SickDaysTaken))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func FormatHolidays(holidays []*models.TimeRequest) string {
	if len(holidays) == 0 {
		return "🏖 Upcoming holidays\n\nNothing planned."
	}

	var sb strings.Builder
	sb.WriteString("🏖 Upcoming holidays\n")
	for _, h := range holidays {
		sb.WriteString(fmt.Sprintf("\n%s: %s → %s", h.UserName, h.StartDate, h.EndDate))
	}
	return sb.String()
}
