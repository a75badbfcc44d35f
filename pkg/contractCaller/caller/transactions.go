package caller

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrReadOnly is returned by write calls on a caller built without a signer.
var ErrReadOnly = fmt.Errorf("no transaction signer configured")

// transactOpts returns the options bind uses to build, not send, a write call.
func (cc *ContractCaller) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if cc.signer == nil {
		return nil, ErrReadOnly
	}
	opts, err := cc.signer.GetTransactOpts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction options")
	}
	return opts, nil
}

// sendAndConfirm hands tx to the signer and waits for a successful receipt.
func (cc *ContractCaller) sendAndConfirm(ctx context.Context, tx *ethereumTypes.Transaction, operation string) (*ethereumTypes.Receipt, error) {
	cc.logger.Sugar().Infow("Submitting registry transaction",
		zap.String("operation", operation),
		zap.String("from", cc.signer.GetFromAddress().Hex()),
		zap.String("registry", cc.registryAddress.Hex()),
	)

	receipt, err := cc.signer.SignAndSendTransaction(ctx, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "%s transaction failed", operation)
	}

	cc.logger.Sugar().Infow("Registry transaction confirmed",
		zap.String("operation", operation),
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	return receipt, nil
}
