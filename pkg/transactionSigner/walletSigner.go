package transactionSigner

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/verifywire/verifywire-go/pkg/wallet"
	"go.uber.org/zap"
)

const (
	fallbackGasTipCap = 1_000_000_000 // 1 gwei
	baseFeeMultiplier = 2
)

// WalletTransactionSigner prices transactions against the chain and has the
// connected wallet sign them with eth_signTransaction.
type WalletTransactionSigner struct {
	wallet      wallet.IWallet
	client      ChainClient
	logger      *zap.Logger
	fromAddress common.Address

	mu      sync.Mutex
	chainID *big.Int
}

// NewWalletTransactionSigner does not touch the chain. The chain id is
// fetched on the first SignAndSendTransaction.
func NewWalletTransactionSigner(
	w wallet.IWallet,
	fromAddress common.Address,
	client ChainClient,
	logger *zap.Logger,
) *WalletTransactionSigner {
	return &WalletTransactionSigner{
		wallet:      w,
		client:      client,
		logger:      logger,
		fromAddress: fromAddress,
	}
}

func (s *WalletTransactionSigner) chainIDFor(ctx context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chainID != nil {
		return s.chainID, nil
	}
	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	s.chainID = chainID
	return chainID, nil
}

// GetTransactOpts returns options that make bind build the call without
// signing or sending it. Nonce and gas are placeholders so bind does not
// query the chain; SignAndSendTransaction prices the transaction itself.
func (s *WalletTransactionSigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{
		From:     s.fromAddress,
		Context:  ctx,
		NoSend:   true,
		Nonce:    big.NewInt(0),
		GasPrice: big.NewInt(0),
		GasLimit: 1,
		Signer: func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			return tx, nil
		},
	}, nil
}

func (s *WalletTransactionSigner) fees(ctx context.Context) (gasTipCap *big.Int, maxFeePerGas *big.Int, err error) {
	gasTipCap, err = s.client.SuggestGasTipCap(ctx)
	if err != nil {
		s.logger.Sugar().Warnw("Cannot get gasTipCap, using fallback", zap.Error(err))
		gasTipCap = big.NewInt(fallbackGasTipCap)
	}

	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest block header: %w", err)
	}
	baseFee := header.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}

	maxFeePerGas = new(big.Int).Add(
		new(big.Int).Mul(baseFee, big.NewInt(baseFeeMultiplier)),
		gasTipCap,
	)
	return gasTipCap, maxFeePerGas, nil
}

func (s *WalletTransactionSigner) gasLimit(ctx context.Context, tx *types.Transaction, gasTipCap, maxFeePerGas *big.Int) (uint64, error) {
	gasLimit, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:      s.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return addGasBuffer(gasLimit), nil
}

func (s *WalletTransactionSigner) EstimateGasPriceAndLimit(ctx context.Context, tx *types.Transaction) (*big.Int, uint64, error) {
	gasTipCap, maxFeePerGas, err := s.fees(ctx)
	if err != nil {
		return nil, 0, err
	}
	gasLimit, err := s.gasLimit(ctx, tx, gasTipCap, maxFeePerGas)
	if err != nil {
		return nil, 0, err
	}
	return maxFeePerGas, gasLimit, nil
}

// SignAndSendTransaction rebuilds tx as an EIP-1559 transaction with fresh
// fees and nonce, has the wallet sign it, sends it and waits for the receipt.
func (s *WalletTransactionSigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	chainID, err := s.chainIDFor(ctx)
	if err != nil {
		return nil, err
	}
	gasTipCap, maxFeePerGas, err := s.fees(ctx)
	if err != nil {
		return nil, err
	}
	gasLimit, err := s.gasLimit(ctx, tx, gasTipCap, maxFeePerGas)
	if err != nil {
		return nil, err
	}

	// tx.Nonce() may be the placeholder zero, so always ask the network.
	nonce, err := s.client.PendingNonceAt(ctx, s.fromAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	unsigned := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Gas:       gasLimit,
		To:        tx.To(),
		Value:     tx.Value(),
		Data:      tx.Data(),
	})

	s.logger.Info("SignAndSendTransaction: requesting wallet signature",
		zap.String("to", tx.To().Hex()),
		zap.String("maxPriorityFeePerGas", gasTipCap.String()),
		zap.String("maxFeePerGas", maxFeePerGas.String()),
		zap.Uint64("gasLimit", gasLimit),
		zap.Uint64("nonce", nonce),
	)

	signedTx, err := s.wallet.SignTransaction(ctx, s.fromAddress, unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction with wallet: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	s.logger.Info("SignAndSendTransaction: transaction sent",
		zap.String("txHash", signedTx.Hash().Hex()),
	)

	receipt, err := bind.WaitMined(ctx, s.client, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		s.logger.Error("SignAndSendTransaction: transaction failed",
			zap.String("txHash", receipt.TxHash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return nil, fmt.Errorf("transaction failed with status %d", receipt.Status)
	}

	s.logger.Info("SignAndSendTransaction: transaction succeeded",
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)

	return receipt, nil
}

func (s *WalletTransactionSigner) GetFromAddress() common.Address {
	return s.fromAddress
}
