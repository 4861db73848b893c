package controller

import (
	"net/http"
	"strconv"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

var (
	manageSessionRoles = []model.UserRole{model.RoleAdmin, model.RoleTrainer}
	deleteSessionRoles = []model.UserRole{model.RoleAdmin}
)

// handleListSessions отдаёт сессии; необязательные фильтры
// trainer_id, trainee_id и status взаимоисключающие.
func (c *Controller) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if _, err := c.authenticate(r); err != nil {
		c.writeError(w, err)
		return
	}

	var (
		sessions []*model.Session
		err      error
	)
	query := r.URL.Query()
	switch {
	case query.Get("trainer_id") != "":
		trainerID, parseErr := strconv.ParseInt(query.Get("trainer_id"), 10, 64)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid trainer_id"})
			return
		}
		sessions, err = c.sessions.ListByTrainer(r.Context(), trainerID)
	case query.Get("trainee_id") != "":
		traineeID, parseErr := strconv.ParseInt(query.Get("trainee_id"), 10, 64)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid trainee_id"})
			return
		}
		sessions, err = c.sessions.ListByTrainee(r.Context(), traineeID)
	case query.Get("status") != "":
		sessions, err = c.sessions.ListByStatus(r.Context(), model.SessionStatus(query.Get("status")))
	default:
		skip, limit := pagination(r)
		sessions, err = c.sessions.List(r.Context(), skip, limit)
	}
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionPayloads(sessions))
}

func (c *Controller) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if _, err := c.authenticate(r); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	session, err := c.sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if session == nil {
		c.writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newSessionPayload(session))
}

// handleSessionByLink ищет сессию по токену ссылки без аутентификации:
// непредсказуемый токен сам по себе предоставляет доступ.
func (c *Controller) handleSessionByLink(w http.ResponseWriter, r *http.Request) {
	session, err := c.sessions.GetByLink(r.Context(), r.PathValue("token"))
	if err != nil {
		c.writeError(w, err)
		return
	}
	if session == nil {
		c.writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newSessionPayload(session))
}

func (c *Controller) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageSessionRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	var req createSessionRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	session, err := c.sessions.Create(r.Context(), service.CreateSessionSpec{
		Title:           req.Title,
		Description:     req.Description,
		TrainerID:       req.TrainerID,
		ScheduledDate:   req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		ClassLink:       req.ClassLink,
		SessionLink:     req.SessionLink,
		TraineeIDs:      req.Trainees,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionPayload(session))
}

func (c *Controller) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageSessionRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	var req updateSessionRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	session, err := c.sessions.Update(r.Context(), sessionID, service.SessionUpdate{
		Title:           req.Title,
		Description:     req.Description,
		TrainerID:       req.TrainerID,
		ScheduledDate:   req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		ClassLink:       req.ClassLink,
		TraineeIDs:      req.Trainees,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionPayload(session))
}

func (c *Controller) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, deleteSessionRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	deleted, err := c.sessions.Delete(r.Context(), sessionID)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if !deleted {
		c.writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Session deleted successfully"})
}

func (c *Controller) handleAddTrainee(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageSessionRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	traineeID, err := pathID(r, "traineeID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	added, err := c.sessions.AddTrainee(r.Context(), sessionID, traineeID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	message := "Trainee added to session"
	if !added {
		message = "Trainee already in session"
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": message, "added": added})
}

func (c *Controller) handleRemoveTrainee(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageSessionRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	traineeID, err := pathID(r, "traineeID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if err := c.sessions.RemoveTrainee(r.Context(), sessionID, traineeID); err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Trainee removed from session"})
}
