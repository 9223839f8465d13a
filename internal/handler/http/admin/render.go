package admin

import (
	"bytes"
	"html/template"
	"strconv"
	"time"
	"unicode/utf8"

	"discord-logger/internal/domain/entity"
)

const (
	detailsDisplayRunes = 50
	displayTimeLayout   = "2006-01-02 15:04:05"

	iconSuccess = "✅"
	iconFailure = "❌"
)

var fragments = template.Must(template.New("logs").Funcs(template.FuncMap{
	"truncate": truncateDetails,
	"stamp":    func(t time.Time) string { return t.UTC().Format(displayTimeLayout) },
}).Parse(`{{define "logs"}}{{if not .}}<p>No logs found.</p>{{else}}<table class="wpdl-log-table">` +
	`<thead><tr><th>Time</th><th>Type</th><th>Message</th><th>Details</th></tr></thead><tbody>` +
	`{{range .}}<tr><td>{{stamp .Timestamp}}</td><td>{{.Type}}</td><td>{{.Message}}</td><td>{{truncate .Details}}</td></tr>{{end}}` +
	`</tbody></table>{{end}}{{end}}` +
	`{{define "dashboard"}}{{if not .}}<p>No recent activity.</p>{{else}}<ul class="wpdl-dashboard-list">` +
	`{{range .}}<li><span class="wpdl-event-icon">{{.Icon}}</span>{{.Message}}<span class="wpdl-event-time">{{.Age}}</span></li>{{end}}` +
	`</ul>{{end}}{{end}}`))

func renderLogs(entries []*entity.LogEntry) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, "logs", entries); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderDashboard(items []DashboardItem) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, "dashboard", items); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// truncateDetails shortens details for display only; the stored value is
// never cut.
func truncateDetails(s string) string {
	if utf8.RuneCountInString(s) <= detailsDisplayRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == detailsDisplayRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

func icon(t entity.LogType) string {
	if t == entity.LogTypeSuccess {
		return iconSuccess
	}
	return iconFailure
}

// humanizeAge renders the distance between then and now the way platform
// dashboards do: "5 mins ago", "1 hour ago", "3 days ago".
func humanizeAge(then, now time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}

	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)
	var n int
	var unit string
	switch {
	case d < time.Hour:
		n, unit = roundAtLeastOne(d, time.Minute), "min"
	case d < day:
		n, unit = roundAtLeastOne(d, time.Hour), "hour"
	case d < week:
		n, unit = roundAtLeastOne(d, day), "day"
	case d < month:
		n, unit = roundAtLeastOne(d, week), "week"
	case d < year:
		n, unit = roundAtLeastOne(d, month), "month"
	default:
		n, unit = roundAtLeastOne(d, year), "year"
	}
	if n != 1 {
		unit += "s"
	}
	return strconv.Itoa(n) + " " + unit + " ago"
}

func roundAtLeastOne(d, unit time.Duration) int {
	n := int((d + unit/2) / unit)
	if n < 1 {
		return 1
	}
	return n
}
