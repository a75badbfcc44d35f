package caller

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/verifywire/verifywire-go/pkg/bindings/VerifyWireRegistry"
	"github.com/verifywire/verifywire-go/pkg/transactionSigner"
	"go.uber.org/zap"
)

type ContractCaller struct {
	backend         bind.ContractBackend
	signer          transactionSigner.ITransactionSigner
	logger          *zap.Logger
	registryAddress common.Address
	registry        *VerifyWireRegistry.VerifyWireRegistry
}

// NewContractCaller binds the registry at registryAddress. signer may be nil
// for read-only use, in which case PublishRails fails.
func NewContractCaller(
	backend bind.ContractBackend,
	registryAddress common.Address,
	signer transactionSigner.ITransactionSigner,
	logger *zap.Logger,
) (*ContractCaller, error) {
	registry, err := VerifyWireRegistry.NewVerifyWireRegistry(registryAddress, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry contract instance: %w", err)
	}

	return &ContractCaller{
		backend:         backend,
		signer:          signer,
		logger:          logger,
		registryAddress: registryAddress,
		registry:        registry,
	}, nil
}

func (cc *ContractCaller) RegistryAddress() common.Address {
	return cc.registryAddress
}
