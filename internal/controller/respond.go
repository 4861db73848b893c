package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError переводит доменные ошибки в HTTP-статусы. Текст ошибок
// хранилища клиенту не отдаётся.
func (c *Controller) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"detail": err.Error()})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "not authorized"})
	case errors.Is(err, errUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid or missing token"})
	default:
		c.logger.Error("Internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
	}
}

// userPayload добавляет вычисляемое полное имя к сериализации пользователя
type userPayload struct {
	*model.User
	Name string `json:"name"`
}

func newUserPayload(u *model.User) userPayload {
	return userPayload{User: u, Name: u.Name()}
}

func newUserPayloads(users []*model.User) []userPayload {
	payloads := make([]userPayload, 0, len(users))
	for _, u := range users {
		payloads = append(payloads, newUserPayload(u))
	}
	return payloads
}

// sessionPayload сериализует сессию с составом
type sessionPayload struct {
	*model.Session
	Trainees []userPayload `json:"trainees"`
}

func newSessionPayload(s *model.Session) sessionPayload {
	return sessionPayload{Session: s, Trainees: newUserPayloads(s.Trainees)}
}

func newSessionPayloads(sessions []*model.Session) []sessionPayload {
	payloads := make([]sessionPayload, 0, len(sessions))
	for _, s := range sessions {
		payloads = append(payloads, newSessionPayload(s))
	}
	return payloads
}
