package walletProvider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// ErrorCodeUnrecognizedChain is returned by wallets asked to switch to a chain
// they have not been told about.
const ErrorCodeUnrecognizedChain = 4902

// ErrorCodeUserRejected is the EIP-1193 code for a request the user declined.
const ErrorCodeUserRejected = 4001

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://127.0.0.1:1248",
		Timeout: 2 * time.Minute,
	}
}

type Client struct {
	rpcClient *rpc.Client
	logger    *zap.Logger
	baseURL   string
}

// NewClient dials the wallet's JSON-RPC endpoint. Dialing HTTP endpoints does
// not perform any request, so an unreachable wallet surfaces on first use.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("wallet provider URL cannot be empty")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	rpcClient, err := rpc.DialOptions(context.Background(), cfg.BaseURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet provider at %s: %w", cfg.BaseURL, err)
	}

	return &Client{
		rpcClient: rpcClient,
		logger:    logger,
		baseURL:   cfg.BaseURL,
	}, nil
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	c.logger.Sugar().Debugw("Wallet provider request", "method", method, "url", c.baseURL)
	if err := c.rpcClient.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}
	return nil
}

func (c *Client) EthRequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := c.call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) EthAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := c.call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) EthChainId(ctx context.Context) (string, error) {
	var chainId string
	if err := c.call(ctx, &chainId, "eth_chainId"); err != nil {
		return "", err
	}
	return chainId, nil
}

func (c *Client) WalletSwitchEthereumChain(ctx context.Context, chainIdHex string) error {
	var result interface{}
	return c.call(ctx, &result, "wallet_switchEthereumChain", map[string]string{"chainId": chainIdHex})
}

func (c *Client) WalletAddEthereumChain(ctx context.Context, params interface{}) error {
	var result interface{}
	return c.call(ctx, &result, "wallet_addEthereumChain", params)
}

// PersonalSign hex encodes the message as wallets expect and returns the
// 65 byte signature as hex.
func (c *Client) PersonalSign(ctx context.Context, message string, account string) (string, error) {
	var signature string
	if err := c.call(ctx, &signature, "personal_sign", hexutil.Encode([]byte(message)), account); err != nil {
		return "", err
	}
	return signature, nil
}

func (c *Client) EthSignTransaction(ctx context.Context, from string, transaction map[string]interface{}) (string, error) {
	tx := make(map[string]interface{}, len(transaction)+1)
	for k, v := range transaction {
		tx[k] = v
	}
	tx["from"] = from

	var raw interface{}
	if err := c.call(ctx, &raw, "eth_signTransaction", tx); err != nil {
		return "", err
	}

	// Some wallets return the raw hex directly, others wrap it as {raw, tx}.
	switch v := raw.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if s, ok := v["raw"].(string); ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("eth_signTransaction returned unexpected result %T", raw)
}

func (c *Client) Close() {
	c.rpcClient.Close()
}

// ErrorCode extracts the JSON-RPC error code from err, or 0 if there is none.
func ErrorCode(err error) int {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode()
	}
	return 0
}
