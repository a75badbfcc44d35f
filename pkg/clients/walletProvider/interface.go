package walletProvider

import (
	"context"
)

// IWalletProvider is the EIP-1193 style request surface of an external wallet,
// reached over JSON-RPC. Values are passed through in their wire (hex string)
// form; interpretation happens in the wallet package.
type IWalletProvider interface {
	// EthRequestAccounts asks the user to expose accounts (eth_requestAccounts).
	EthRequestAccounts(ctx context.Context) ([]string, error)

	// EthAccounts lists already exposed accounts without prompting (eth_accounts).
	EthAccounts(ctx context.Context) ([]string, error)

	// EthChainId returns the active chain id as a hex string (eth_chainId).
	EthChainId(ctx context.Context) (string, error)

	// WalletSwitchEthereumChain switches the active chain (wallet_switchEthereumChain).
	// Providers answer with error code 4902 when the chain is unknown to them.
	WalletSwitchEthereumChain(ctx context.Context, chainIdHex string) error

	// WalletAddEthereumChain registers a chain with the wallet (wallet_addEthereumChain).
	WalletAddEthereumChain(ctx context.Context, params interface{}) error

	// PersonalSign signs a UTF-8 message with the EIP-191 prefix (personal_sign).
	PersonalSign(ctx context.Context, message string, account string) (string, error)

	// EthSignTransaction signs a transaction and returns the raw RLP hex (eth_signTransaction).
	EthSignTransaction(ctx context.Context, from string, transaction map[string]interface{}) (string, error)

	Close()
}

// Compile-time check to ensure Client implements IWalletProvider
var _ IWalletProvider = (*Client)(nil)
