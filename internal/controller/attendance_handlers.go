package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
)

var markAttendanceRoles = []model.UserRole{model.RoleAdmin, model.RoleTrainer}

func (c *Controller) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, markAttendanceRoles...); err != nil {
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

	var req markAttendanceRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	record, err := c.attendance.Mark(r.Context(), sessionID, traineeID, *req.Present)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (c *Controller) handleSessionAttendance(w http.ResponseWriter, r *http.Request) {
	if _, err := c.authenticate(r); err != nil {
		c.writeError(w, err)
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	records, err := c.attendance.BySession(r.Context(), sessionID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
