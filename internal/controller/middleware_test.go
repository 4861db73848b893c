package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	trainer := &model.User{Role: model.RoleTrainer}
	trainee := &model.User{Role: model.RoleTrainee}

	assert.NoError(t, requireRole(admin, model.RoleAdmin))
	assert.NoError(t, requireRole(trainer, model.RoleAdmin, model.RoleTrainer))
	assert.NoError(t, requireRole(trainee, model.RoleTrainee))

	assert.ErrorIs(t, requireRole(trainee, model.RoleAdmin), service.ErrForbidden)
	assert.ErrorIs(t, requireRole(trainer, model.RoleAdmin), service.ErrForbidden)
	assert.ErrorIs(t, requireRole(trainee, model.RoleAdmin, model.RoleTrainer), service.ErrForbidden)
}

func TestPagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/", nil)

	skip, limit := pagination(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)
}

func TestPagination_Params(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/?skip=20&limit=50", nil)

	skip, limit := pagination(r)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 50, limit)
}

func TestPagination_IgnoresInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/?skip=-1&limit=0", nil)
	skip, limit := pagination(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)

	r = httptest.NewRequest("GET", "/users/?skip=abc&limit=5000", nil)
	skip, limit = pagination(r)
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)
}
