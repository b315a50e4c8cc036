package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "dev")
	assert.Error(t, err)
}

func TestNew_DefaultLevel(t *testing.T) {
	log, err := New("", "dev")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	ctx := WithContext(context.Background(), log.With(zap.String("request_id", "r-1")))
	FromContext(ctx).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "r-1", logs.All()[0].ContextMap()["request_id"])

	//無ければグローバル
	assert.NotNil(t, FromContext(context.Background()))
}
