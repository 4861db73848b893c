package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

var (
	listUsersRoles    = []model.UserRole{model.RoleAdmin, model.RoleTrainer}
	createUserRoles   = []model.UserRole{model.RoleAdmin}
	deleteUserRoles   = []model.UserRole{model.RoleAdmin}
	passwordLogsRoles = []model.UserRole{model.RoleAdmin}
)

func (c *Controller) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, listUsersRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	// Необязательный фильтр по роли
	if roleParam := r.URL.Query().Get("role"); roleParam != "" {
		role := model.UserRole(roleParam)
		if !role.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "unknown role"})
			return
		}
		users, err := c.users.GetByRole(r.Context(), role)
		if err != nil {
			c.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserPayloads(users))
		return
	}

	skip, limit := pagination(r)
	users, err := c.users.List(r.Context(), skip, limit)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserPayloads(users))
}

// handleGetUser: админ и тренер видят всех, остальные — только себя
func (c *Controller) handleGetUser(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}

	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if requireRole(actor, model.RoleAdmin, model.RoleTrainer) != nil && actor.ID != userID {
		c.writeError(w, service.ErrForbidden)
		return
	}

	user, err := c.users.GetByID(r.Context(), userID)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if user == nil {
		c.writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newUserPayload(user))
}

func (c *Controller) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, createUserRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	var req createUserRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	user, temporaryPassword, err := c.users.Create(r.Context(), service.CreateUserSpec{
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, actor.ID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	// Открытый текст временного пароля отдаётся ровно один раз
	writeJSON(w, http.StatusOK, map[string]any{
		"user":               newUserPayload(user),
		"temporary_password": temporaryPassword,
		"message":            "User " + user.Name() + " created successfully. Share the temporary password securely with the user.",
	})
}

// handleUpdateUser: админ меняет любого, остальные — только себя
func (c *Controller) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}

	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if actor.Role != model.RoleAdmin && actor.ID != userID {
		c.writeError(w, service.ErrForbidden)
		return
	}

	var req updateUserRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	user, err := c.users.Update(r.Context(), userID, service.UserUpdate{
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserPayload(user))
}

func (c *Controller) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, deleteUserRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	deleted, err := c.users.Delete(r.Context(), userID)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if !deleted {
		c.writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (c *Controller) handlePasswordLogs(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, passwordLogsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	logs, err := c.users.PasswordLogs(r.Context(), userID)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
