package contractCaller

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/verifywire/verifywire-go/pkg/contractCaller/caller"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// IRegistryReader is the read side of the VerifyWire registry.
type IRegistryReader interface {
	// GetRecord returns the record for shortCode. Codes are normalized before
	// lookup; an unpublished code yields a record with a zero owner.
	GetRecord(ctx context.Context, shortCode string) (*types.OnChainRecord, error)
}

type IContractCaller interface {
	IRegistryReader

	// PublishRails submits the six rail commitments for shortCode through the
	// configured signer and waits for the transaction to be mined.
	PublishRails(ctx context.Context, shortCode string, commitments types.RailCommitments) (*ethereumTypes.Receipt, error)

	RegistryAddress() common.Address
}

var _ IContractCaller = (*caller.ContractCaller)(nil)
