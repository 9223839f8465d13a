package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/handler/http/respond"
	settingsUC "discord-logger/internal/usecase/settings"
)

const (
	msgSettingSaved   = "Setting saved"
	msgInvalidSetting = "Invalid setting"
)

// SaveSettingHandler stores one allow-listed option.
type SaveSettingHandler struct {
	Svc SettingsService
}

func (h SaveSettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req saveSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, Result{Message: "invalid request body"})
		return
	}

	err := h.Svc.Save(r.Context(), req.Setting, req.Value)
	var ve *entity.ValidationError
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, Result{Success: true, Message: msgSettingSaved})
	case errors.Is(err, settingsUC.ErrInvalidSetting):
		respond.JSON(w, http.StatusBadRequest, Result{Message: msgInvalidSetting})
	case errors.As(err, &ve):
		// 不正値は空文字で保存済み
		respond.JSON(w, http.StatusBadRequest, Result{Message: ve.Message})
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// GetSettingsHandler returns the three options, bot name defaulted.
type GetSettingsHandler struct {
	Svc SettingsService
}

func (h GetSettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	all, err := h.Svc.All(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, all)
}

// ValidateHandler checks ?url= against the webhook format without saving
// or contacting Discord.
type ValidateHandler struct{}

func (ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := entity.ValidateWebhookURL(r.URL.Query().Get("url"))
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		respond.JSON(w, http.StatusOK, ValidateResponse{Message: ve.Message})
		return
	}
	respond.JSON(w, http.StatusOK, ValidateResponse{Valid: true})
}
