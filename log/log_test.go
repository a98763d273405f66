package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWarnCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	Warn("case token dropped", zap.String("tag", "case"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Message, "case token dropped")
	require.Equal(t, "case", entries[0].ContextMap()["tag"])
}

func TestCastToError(t *testing.T) {
	_, err := CastToError(42)
	require.EqualError(t, err, "42")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	require.Error(t, err)
}
