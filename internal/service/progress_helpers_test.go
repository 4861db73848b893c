package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 0.0, progressPercentage(0, 0))
	assert.Equal(t, 0.0, progressPercentage(5, 0))
	assert.Equal(t, 0.0, progressPercentage(0, 10))
	assert.Equal(t, 100.0, progressPercentage(10, 10))
	assert.Equal(t, 50.0, progressPercentage(5, 10))
	// Округление до двух знаков
	assert.Equal(t, 33.33, progressPercentage(1, 3))
	assert.Equal(t, 66.67, progressPercentage(2, 3))
	// Отметки не привязаны к текущему составу, доля может превысить 100%
	assert.Equal(t, 200.0, progressPercentage(2, 1))
}

func TestActivityStatus(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "inactive", activityStatus(nil, now))

	recent := now.Add(-24 * time.Hour)
	assert.Equal(t, "active", activityStatus(&recent, now))

	edge := now.Add(-activityWindow)
	assert.Equal(t, "active", activityStatus(&edge, now))

	stale := now.Add(-activityWindow - time.Minute)
	assert.Equal(t, "inactive", activityStatus(&stale, now))
}

func TestLatestTime(t *testing.T) {
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, latestTime(nil, nil))
	assert.Equal(t, &earlier, latestTime(&earlier, nil))
	assert.Equal(t, &earlier, latestTime(nil, &earlier))
	assert.Equal(t, &later, latestTime(&earlier, &later))
	assert.Equal(t, &later, latestTime(&later, &earlier))
}
