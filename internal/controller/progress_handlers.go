package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

var trainerRosterRoles = []model.UserRole{model.RoleAdmin, model.RoleTrainer}

// handleTraineeProgress доступен админу, тренеру и самому ученику.
func (c *Controller) handleTraineeProgress(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}

	traineeID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if actor.Role == model.RoleTrainee && actor.ID != traineeID {
		c.writeError(w, service.ErrForbidden)
		return
	}

	progress, err := c.progress.TraineeProgress(r.Context(), traineeID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (c *Controller) handleTrainerRosterStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, trainerRosterRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	trainerID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	// Тренер видит только собственный список
	if actor.Role == model.RoleTrainer && actor.ID != trainerID {
		c.writeError(w, service.ErrForbidden)
		return
	}

	roster, err := c.progress.TrainerRosterStatus(r.Context(), trainerID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roster)
}
