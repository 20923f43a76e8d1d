package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitorCheck(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("refused") })

	m := NewHealthMonitor(down, up, nil)
	status := m.Check(context.Background())

	assert.False(t, status.Store)
	require.NotNil(t, status.Cache)
	assert.True(t, *status.Cache)
	assert.Nil(t, status.Queue)
	assert.Equal(t, status, m.Status())
}
