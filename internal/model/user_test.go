package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserName(t *testing.T) {
	user := &User{FirstName: "Anna", LastName: "Ivanova"}
	assert.Equal(t, "Anna Ivanova", user.Name())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleTrainer.Valid())
	assert.True(t, RoleTrainee.Valid())
	assert.False(t, UserRole("superuser").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestUserJSON_HidesPasswordHash(t *testing.T) {
	user := &User{ID: 1, Username: "ivanov", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), "ivanov")
}

func TestSessionStatusValid(t *testing.T) {
	assert.True(t, SessionStatusScheduled.Valid())
	assert.True(t, SessionStatusCompleted.Valid())
	assert.True(t, SessionStatusCancelled.Valid())
	assert.False(t, SessionStatus("postponed").Valid())
}
