package persistence

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func TestMarshal_NilAndEmpty(t *testing.T) {
	_, err := Marshal[types.ClaimDraft](nil, "ClaimDraft")
	require.Error(t, err)

	_, err = Unmarshal[types.ClaimDraft](nil, "ClaimDraft")
	require.Error(t, err)

	_, err = Unmarshal[types.ClaimDraft]([]byte("{not json"), "ClaimDraft")
	require.Error(t, err)
}

func TestMarshal_ReceiptKeepsCommitmentsAsHex(t *testing.T) {
	txHash := common.HexToHash("0x01")
	receipt := &types.SignedAttestation{
		Schema:                "vwire-rails-v1",
		OrganizationShortCode: "boa",
		PayloadCommitment:     commitment.PayloadCommitment{0xaa},
		Signature:             []byte{1, 2, 3},
		SignerAddress:         common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Status:                types.PublishStatusPublished,
		TransactionRef:        &txHash,
	}

	data, err := Marshal(receipt, "SignedAttestation")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hash":"0xaa00`)
	assert.Contains(t, string(data), `"signature":"0x010203"`)

	loaded, err := Unmarshal[types.SignedAttestation](data, "SignedAttestation")
	require.NoError(t, err)
	assert.Equal(t, receipt, loaded)
}
