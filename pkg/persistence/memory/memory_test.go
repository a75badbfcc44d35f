package memory

import (
	"testing"

	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/persistence/persistencetest"
)

func TestMemoryPersistence(t *testing.T) {
	persistencetest.Run(t, func(t *testing.T) persistence.IDraftStore {
		return NewMemoryPersistence()
	})
}

func TestMemoryPersistence_ImplementsInterface(t *testing.T) {
	var _ persistence.IDraftStore = NewMemoryPersistence()
}
