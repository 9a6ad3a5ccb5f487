package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	report := NewHealthService(HealthChecks{"database": up, "redis": up}).Check(context.Background())
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "up", report.Components["database"])

	report = NewHealthService(HealthChecks{"database": up, "redis": down}).Check(context.Background())
	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "down: connection refused", report.Components["redis"])

	report = NewHealthService(nil).Check(context.Background())
	assert.Equal(t, "healthy", report.Status)
	assert.Empty(t, report.Components)
}
