package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	"github.com/jrh3k5/multichain-txn-export/internal/credential"
	"github.com/jrh3k5/multichain-txn-export/internal/export"
	"github.com/jrh3k5/multichain-txn-export/internal/history"
	ctsslog "github.com/jrh3k5/multichain-txn-export/internal/logging/slog"
	"github.com/spf13/cobra"
)

type runOptions struct {
	address       string
	chains        string
	outputDir     string
	configPath    string
	endpointsPath string
	logLevel      string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "multichain-txn-export",
		Short: "Export the transaction history of an address across EVM chains and Solana",
		Long: `Fetches the complete transaction history of an address from Etherscan-family
explorers and a Solana RPC node, writing one CSV file per chain.

API keys and the Solana RPC URL are prompted for on first use and saved to
~/.multichain_config.json.

Examples:
  multichain-txn-export --address 0xABC --chains ethereum,polygon
  multichain-txn-export --chains solana --output-dir exports`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.address, "address", "", "contract address to export; prompted for when omitted")
	flags.StringVar(&opts.chains, "chains", "", "comma-separated chains to export; prompted for when omitted")
	flags.StringVar(&opts.outputDir, "output-dir", export.DefaultOutputDir, "directory the CSV files are written to")
	flags.StringVar(&opts.configPath, "config", "", "credential file; defaults to ~/.multichain_config.json")
	flags.StringVar(&opts.endpointsPath, "endpoints", "", "YAML file overriding explorer endpoints")
	flags.StringVar(&opts.logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")

	return rootCmd
}

func run(ctx context.Context, opts *runOptions) error {
	level, err := ctsslog.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(ctsslog.NewHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	store, err := loadStore(opts.configPath)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(opts.endpointsPath)
	if err != nil {
		return err
	}

	address := opts.address
	if address == "" {
		address, err = promptAddress()
		if err != nil {
			return err
		}
	}

	chainList := opts.chains
	if chainList == "" {
		chainList, err = promptChains(registry)
		if err != nil {
			return err
		}
	}

	chainIDs := chain.ParseList(chainList)
	if len(chainIDs) == 0 {
		return fmt.Errorf("no chains selected from '%s'", chainList)
	}

	progress := newProgressReporter(os.Stderr)
	defer progress.Finish()

	options := history.DefaultOptions()
	options.OnProgress = progress.Add
	options.OnChainDone = progress.ChainDone

	resolver := credential.NewStoreResolver(store, credential.NewTerminalPrompter(os.Stdin, os.Stderr))
	exporter := history.NewExporter(
		http.DefaultClient,
		registry,
		resolver,
		export.NewWriter(opts.outputDir),
		options,
	)

	slog.InfoContext(ctx, fmt.Sprintf("Exporting transactions of '%s' on %d chain(s)", address, len(chainIDs)))

	results := exporter.Export(ctx, address, chainIDs)

	progress.Finish()
	writeSummary(os.Stdout, results)

	return nil
}

func loadStore(configPath string) (*credential.Store, error) {
	if configPath == "" {
		defaultPath, err := credential.DefaultPath()
		if err != nil {
			return nil, err
		}

		configPath = defaultPath
	}

	store, err := credential.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials from '%s': %w", configPath, err)
	}

	return store, nil
}

func loadRegistry(endpointsPath string) (*chain.Registry, error) {
	registry := chain.DefaultRegistry()
	if endpointsPath == "" {
		return registry, nil
	}

	file, err := os.Open(endpointsPath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open endpoints file: %w", err)
	}
	defer func() { _ = file.Close() }()

	overrides, err := chain.OverridesFromYAML(file)
	if err != nil {
		return nil, err
	}

	registry, err = registry.WithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to apply endpoints from '%s': %w", endpointsPath, err)
	}

	return registry, nil
}
