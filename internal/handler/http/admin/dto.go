package admin

import (
	"time"

	"discord-logger/internal/domain/entity"
)

// Result is the envelope for actions that only report success and a message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// LogEntryDTO is one activity log row as returned to the admin client.
type LogEntryDTO struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   *int64    `json:"actor_id,omitempty"`
}

// LogsResponse carries the entries and the rendered viewer fragment.
type LogsResponse struct {
	Success bool          `json:"success"`
	Entries []LogEntryDTO `json:"entries"`
	HTML    string        `json:"html"`
}

// StatsResponse mirrors entity.LogStats.
type StatsResponse struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Error   int64 `json:"error"`
}

// DashboardItem is one line of the recent activity feed.
type DashboardItem struct {
	Icon      string    `json:"icon"`
	Message   string    `json:"message"`
	Age       string    `json:"age"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardResponse is the recent activity feed.
type DashboardResponse struct {
	Items []DashboardItem `json:"items"`
	HTML  string          `json:"html"`
}

// ValidateResponse is the result of the webhook URL validator mirror.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type saveSettingRequest struct {
	Setting string `json:"setting"`
	Value   string `json:"value"`
}

// toDTO shortens Details the same way the HTML viewer does, so the response
// size stays bounded whatever was stored.
func toDTO(e *entity.LogEntry) LogEntryDTO {
	return LogEntryDTO{
		ID:        e.ID,
		Type:      string(e.Type),
		Kind:      string(e.Kind),
		Message:   e.Message,
		Details:   truncateDetails(e.Details),
		Timestamp: e.Timestamp.UTC(),
		ActorID:   e.ActorID,
	}
}
