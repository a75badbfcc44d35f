package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/persistence/badger"
	"github.com/verifywire/verifywire-go/pkg/persistence/memory"
	"go.uber.org/zap/zaptest"
)

func TestOpen(t *testing.T) {
	l := zaptest.NewLogger(t)

	t.Run("memory", func(t *testing.T) {
		s, err := Open(&config.StoreConfig{Type: config.StoreType_Memory}, l)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()
		assert.IsType(t, &memory.MemoryPersistence{}, s)
	})

	t.Run("badger", func(t *testing.T) {
		s, err := Open(&config.StoreConfig{Type: config.StoreType_Badger, Path: t.TempDir()}, l)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()
		assert.IsType(t, &badger.BadgerPersistence{}, s)
		assert.NoError(t, s.HealthCheck())
	})

	t.Run("redis without address", func(t *testing.T) {
		_, err := Open(&config.StoreConfig{Type: config.StoreType_Redis}, l)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Open(&config.StoreConfig{Type: "sqlite"}, l)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := Open(nil, l)
		assert.Error(t, err)
	})
}
