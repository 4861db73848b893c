package controller

import (
	"net/http"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"go.uber.org/zap"
)

// handleLogin проверяет учётные данные и выдаёт access-токен.
// force_password_change подсказывает клиенту, что пароль временный.
func (c *Controller) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	user, err := c.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if user == nil {
		c.logger.Warn("Login failed", zap.String("identifier", req.Username))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
		return
	}

	token, err := c.tokens.Issue(user.Username)
	if err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":          token,
		"token_type":            "bearer",
		"user":                  newUserPayload(user),
		"force_password_change": user.IsTemporaryPassword,
	})
}

// handleChangePassword меняет пароль актора. Не-админ обязан подтвердить
// текущий пароль.
func (c *Controller) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}

	var req changePasswordRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	if actor.Role != model.RoleAdmin {
		if req.CurrentPassword == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "current password required"})
			return
		}
		verified, err := c.users.Authenticate(r.Context(), actor.Username, req.CurrentPassword)
		if err != nil {
			c.writeError(w, err)
			return
		}
		if verified == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid current password"})
			return
		}
	}

	if err := c.users.ChangePassword(r.Context(), actor.ID, req.NewPassword, actor.ID); err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

var resetPasswordRoles = []model.UserRole{model.RoleAdmin}

// handleResetPassword сбрасывает пароль пользователя. Только для админа.
func (c *Controller) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, resetPasswordRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	userID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	var req resetPasswordRequest
	if err := c.decodeValid(r, &req); err != nil {
		c.writeError(w, err)
		return
	}

	if err := c.users.ResetPassword(r.Context(), userID, req.NewPassword, actor.ID); err != nil {
		c.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
