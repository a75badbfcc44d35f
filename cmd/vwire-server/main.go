package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/contractCaller/caller"
	"github.com/verifywire/verifywire-go/pkg/logger"
	"github.com/verifywire/verifywire-go/pkg/server"
)

func main() {
	defaults := config.DefaultNetworkConfig()
	app := &cli.App{
		Name:  "vwire-server",
		Usage: "Local HTTP service for checking payment instructions",
		Description: `Serves POST /v1/check and GET /v1/records/{shortCode} on the loopback
interface. Pasted instructions are hashed in-process and never logged.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "Listen address",
				Value:   server.DefaultListenAddress,
				EnvVars: []string{config.EnvListenAddress},
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "Registry chain RPC URL",
				Value:   defaults.RpcUrl,
				EnvVars: []string{config.EnvRPCURL},
			},
			&cli.StringFlag{
				Name:    "registry-address",
				Usage:   "VerifyWire registry contract address",
				EnvVars: []string{config.EnvRegistryAddress},
			},
			&cli.Uint64Flag{
				Name:    "chain-id",
				Usage:   "Registry chain ID",
				Value:   uint64(defaults.ChainID),
				EnvVars: []string{config.EnvChainID},
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Sustained requests per second on /v1",
				Value: server.DefaultRatePerSecond,
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Request burst allowed on /v1",
				Value: server.DefaultBurst,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable debug logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	listen := c.String("listen")
	if !isLoopback(listen) {
		return fmt.Errorf("refusing to listen on %s: only loopback addresses are allowed", listen)
	}

	network := &config.NetworkConfig{
		ChainID:         config.ChainId(c.Uint64("chain-id")),
		RpcUrl:          c.String("rpc-url"),
		RegistryAddress: c.String("registry-address"),
	}

	var registry contractCaller.IRegistryReader
	if network.RegistryConfigured() {
		if err := network.Validate(); err != nil {
			return err
		}
		client, err := ethclient.DialContext(c.Context, network.RpcUrl)
		if err != nil {
			return fmt.Errorf("failed to dial %s: %w", network.RpcUrl, err)
		}
		defer client.Close()

		cc, err := caller.NewContractCaller(client, network.Registry(), nil, l)
		if err != nil {
			return fmt.Errorf("failed to create contract caller: %w", err)
		}
		registry = cc
	} else {
		l.Sugar().Warnw("Registry not configured; checks will report a configuration error")
	}

	srv := server.NewServer(&server.Config{
		ListenAddress: listen,
		RatePerSecond: c.Float64("rate"),
		Burst:         c.Int("burst"),
	}, registry, l)
	if err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	l.Sugar().Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
