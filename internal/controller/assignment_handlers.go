package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
)

var manageAssignmentsRoles = []model.UserRole{model.RoleAdmin}

// handleListAssignments: доступно всем аутентифицированным, сервис
// фильтрует по роли актора
func (c *Controller) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}

	skip, limit := pagination(r)
	assignments, err := c.assignments.List(r.Context(), actor, skip, limit)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignments)
}

func (c *Controller) handleAssignStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageAssignmentsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	var req assignStudentRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	assignment, err := c.assignments.Assign(r.Context(), req.StudentID, req.TeacherID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignment)
}

func (c *Controller) handleUnassignStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, manageAssignmentsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	studentID, err := pathID(r, "studentID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	teacherID, err := pathID(r, "teacherID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if err := c.assignments.Unassign(r.Context(), studentID, teacherID); err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Student unassigned successfully"})
}
