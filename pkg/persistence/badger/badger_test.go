package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/persistence/persistencetest"
	"go.uber.org/zap/zaptest"
)

func TestBadgerPersistence(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.IDraftStore {
		bp, err := NewBadgerPersistence(t.TempDir(), zaptest.NewLogger(t))
		require.NoError(t, err)
		return bp
	})
}

func TestBadgerPersistence_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	l := zaptest.NewLogger(t)

	bp, err := NewBadgerPersistence(dir, l)
	require.NoError(t, err)
	require.NoError(t, bp.SaveRailsDraft(persistencetest.SampleRailsDraft()))
	require.NoError(t, bp.SaveReceipt(persistencetest.SampleReceipt()))
	require.NoError(t, bp.Close())

	reopened, err := NewBadgerPersistence(dir, l)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	rails, err := reopened.LoadRailsDraft()
	require.NoError(t, err)
	assert.Equal(t, persistencetest.SampleRailsDraft(), rails)

	receipt, err := reopened.LoadReceipt()
	require.NoError(t, err)
	assert.Equal(t, persistencetest.SampleReceipt(), receipt)
}

func TestBadgerPersistence_RejectsUnknownSchema(t *testing.T) {
	dir := t.TempDir()
	l := zaptest.NewLogger(t)

	bp, err := NewBadgerPersistence(dir, l)
	require.NoError(t, err)
	require.NoError(t, bp.put(persistence.KeySchemaVersion, []byte("v0")))
	require.NoError(t, bp.Close())

	_, err = NewBadgerPersistence(dir, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema version")
}
