package contractCaller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func TestRegistryStub(t *testing.T) {
	ctx := context.Background()
	stub := NewRegistryStub()

	rec, err := stub.GetRecord(ctx, "boa")
	require.NoError(t, err)
	assert.False(t, rec.HasAttestation())

	commitments := types.RailCommitments{WireRouting: commitment.HashField("026009593")}
	_, err = stub.PublishRails(ctx, " BOA ", commitments)
	require.NoError(t, err)
	_, err = stub.PublishRails(ctx, "boa", commitments)
	require.NoError(t, err)

	rec, err = stub.GetRecord(ctx, "Boa")
	require.NoError(t, err)
	assert.True(t, rec.HasAttestation())
	assert.Equal(t, uint32(2), rec.Version)
	assert.Equal(t, stub.Owner, rec.Owner)

	stub.PublishErr = errors.New("reverted")
	_, err = stub.PublishRails(ctx, "boa", commitments)
	assert.Error(t, err)
	assert.Equal(t, 2, stub.Publishes)
}
