package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names shared by the vwire binaries
const (
	EnvRPCURL          = "VWIRE_RPC_URL"
	EnvRegistryAddress = "VWIRE_REGISTRY_ADDRESS"
	EnvChainID         = "VWIRE_CHAIN_ID"
	EnvExplorerURL     = "VWIRE_EXPLORER_URL"
	EnvWalletURL       = "VWIRE_WALLET_URL"
	EnvWalletKey       = "VWIRE_WALLET_KEY"
	EnvVerbose         = "VWIRE_VERBOSE"
	EnvStoreType       = "VWIRE_STORE_TYPE"
	EnvStorePath       = "VWIRE_STORE_PATH"
	EnvRedisAddress    = "VWIRE_REDIS_ADDRESS"
	EnvRedisPassword   = "VWIRE_REDIS_PASSWORD"
	EnvRedisDB         = "VWIRE_REDIS_DB"
	EnvRedisKeyPrefix  = "VWIRE_REDIS_KEY_PREFIX"
	EnvListenAddress   = "VWIRE_LISTEN_ADDRESS"
)

type ChainId uint64

const (
	ChainId_DomaTestnet   ChainId = 97476
	ChainId_EthereumAnvil ChainId = 31337
)

type ChainName string

const (
	ChainName_DomaTestnet   ChainName = "doma-testnet"
	ChainName_EthereumAnvil ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_DomaTestnet:   ChainName_DomaTestnet,
	ChainId_EthereumAnvil: ChainName_EthereumAnvil,
}

var ChainNameToId = map[ChainName]ChainId{
	ChainName_DomaTestnet:   ChainId_DomaTestnet,
	ChainName_EthereumAnvil: ChainId_EthereumAnvil,
}

// Hex renders the chain id the way wallets expect it, e.g. "0x17cc4".
func (c ChainId) Hex() string {
	return hexutil.EncodeUint64(uint64(c))
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainParams is the wallet_addEthereumChain parameter object.
type ChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RpcUrls           []string       `json:"rpcUrls"`
	BlockExplorerUrls []string       `json:"blockExplorerUrls"`
}

const (
	DomaTestnetRPCURL      = "https://rpc-testnet.doma.xyz"
	DomaTestnetExplorerURL = "https://explorer-testnet.doma.xyz"
	AnvilRPCURL            = "http://127.0.0.1:8545"
)

var chainParams = map[ChainId]*ChainParams{
	ChainId_DomaTestnet: {
		ChainID:           ChainId_DomaTestnet.Hex(),
		ChainName:         "Doma Testnet",
		NativeCurrency:    NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
		RpcUrls:           []string{DomaTestnetRPCURL},
		BlockExplorerUrls: []string{DomaTestnetExplorerURL},
	},
	ChainId_EthereumAnvil: {
		ChainID:           ChainId_EthereumAnvil.Hex(),
		ChainName:         "Anvil",
		NativeCurrency:    NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
		RpcUrls:           []string{AnvilRPCURL},
		BlockExplorerUrls: []string{},
	},
}

func GetChainParams(chainId ChainId) (*ChainParams, error) {
	p, ok := chainParams[chainId]
	if !ok {
		return nil, fmt.Errorf("unsupported chain ID: %d", chainId)
	}
	return p, nil
}

var registryAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// NetworkConfig describes the chain the registry lives on.
type NetworkConfig struct {
	ChainID         ChainId
	RpcUrl          string
	RegistryAddress string
	ExplorerUrl     string
}

// DefaultNetworkConfig targets Doma testnet with no registry configured.
func DefaultNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		ChainID:     ChainId_DomaTestnet,
		RpcUrl:      DomaTestnetRPCURL,
		ExplorerUrl: DomaTestnetExplorerURL,
	}
}

func (n *NetworkConfig) ChainName() ChainName {
	return ChainIdToName[n.ChainID]
}

// RegistryConfigured reports whether a well formed registry address is set.
func (n *NetworkConfig) RegistryConfigured() bool {
	return registryAddressPattern.MatchString(strings.TrimSpace(n.RegistryAddress))
}

func (n *NetworkConfig) Registry() common.Address {
	return common.HexToAddress(strings.TrimSpace(n.RegistryAddress))
}

// ExplorerTxURL links a transaction on the block explorer, or returns "" when
// no explorer is known for the network.
func (n *NetworkConfig) ExplorerTxURL(txHash common.Hash) string {
	if n.ExplorerUrl == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(n.ExplorerUrl, "/"), txHash.Hex())
}

// Validate checks the network settings needed to reach the registry. Problems
// are reported as a configuration error listing every invalid field.
func (n *NetworkConfig) Validate() error {
	var allErrors field.ErrorList
	if _, ok := ChainIdToName[n.ChainID]; !ok {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("chainId"), n.ChainID, []string{
			fmt.Sprintf("%d", ChainId_DomaTestnet),
			fmt.Sprintf("%d", ChainId_EthereumAnvil),
		}))
	}
	if strings.TrimSpace(n.RpcUrl) == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	}
	if strings.TrimSpace(n.RegistryAddress) == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("registryAddress"), "registryAddress is required"))
	} else if !n.RegistryConfigured() {
		allErrors = append(allErrors, field.Invalid(field.NewPath("registryAddress"), n.RegistryAddress, "must be a 0x-prefixed 20 byte hex address"))
	}
	if len(allErrors) > 0 {
		return apperrors.Configuration("Registry network is not configured correctly.", allErrors.ToAggregate())
	}
	return nil
}

type StoreType string

const (
	StoreType_Memory StoreType = "memory"
	StoreType_Badger StoreType = "badger"
	StoreType_Redis  StoreType = "redis"
)

// StoreConfig selects and configures the local draft store.
type StoreConfig struct {
	Type           StoreType `env:"VWIRE_STORE_TYPE" envDefault:"badger"`
	Path           string    `env:"VWIRE_STORE_PATH" envDefault:"./.vwire"`
	RedisAddress   string    `env:"VWIRE_REDIS_ADDRESS"`
	RedisPassword  string    `env:"VWIRE_REDIS_PASSWORD"`
	RedisDB        int       `env:"VWIRE_REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string    `env:"VWIRE_REDIS_KEY_PREFIX"`
}

// LoadStoreConfig reads the store configuration from the process environment.
func LoadStoreConfig() (*StoreConfig, error) {
	cfg, err := env.ParseAs[StoreConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse store config from environment: %w", err)
	}
	return &cfg, nil
}

// LoadStoreConfigFrom is LoadStoreConfig over an explicit environment map.
func LoadStoreConfigFrom(environment map[string]string) (*StoreConfig, error) {
	var cfg StoreConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse store config: %w", err)
	}
	return &cfg, nil
}

func (s *StoreConfig) Validate() error {
	var allErrors field.ErrorList
	switch s.Type {
	case StoreType_Memory:
	case StoreType_Badger:
		if strings.TrimSpace(s.Path) == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("path"), "path is required for badger store"))
		}
	case StoreType_Redis:
		if strings.TrimSpace(s.RedisAddress) == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redisAddress"), "redisAddress is required for redis store"))
		}
		if s.RedisDB < 0 || s.RedisDB > 15 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("redisDB"), s.RedisDB, "must be between 0 and 15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("type"), s.Type, []string{
			string(StoreType_Memory), string(StoreType_Badger), string(StoreType_Redis),
		}))
	}
	if len(allErrors) > 0 {
		return apperrors.Configuration("Draft store is not configured correctly.", allErrors.ToAggregate())
	}
	return nil
}
