package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	"github.com/jrh3k5/multichain-txn-export/internal/credential"
	"github.com/jrh3k5/multichain-txn-export/internal/etherscan"
	"github.com/jrh3k5/multichain-txn-export/internal/export"
	ctshttp "github.com/jrh3k5/multichain-txn-export/internal/http"
	"github.com/jrh3k5/multichain-txn-export/internal/solana"
)

// Options tunes how chains are fetched.
type Options struct {
	EVM         etherscan.FetchOptions
	Solana      solana.FetchOptions
	OnProgress  func(chainID chain.ID, fetched int) // invoked with the number of records in each page or batch
	OnChainDone func(result ChainResult)            // invoked once per requested chain, whatever its outcome
}

// DefaultOptions returns the options used against public explorers and RPC nodes.
func DefaultOptions() Options {
	return Options{
		EVM:    etherscan.DefaultFetchOptions(),
		Solana: solana.DefaultFetchOptions(),
	}
}

// Exporter fetches the history of an address chain by chain and writes it to CSV.
type Exporter struct {
	doer     ctshttp.Doer
	registry *chain.Registry
	resolver credential.Resolver
	writer   *export.Writer
	options  Options
}

// NewExporter builds an Exporter.
func NewExporter(
	doer ctshttp.Doer,
	registry *chain.Registry,
	resolver credential.Resolver,
	writer *export.Writer,
	options Options,
) *Exporter {
	return &Exporter{
		doer:     doer,
		registry: registry,
		resolver: resolver,
		writer:   writer,
		options:  options,
	}
}

// Export processes the given chains in order. A chain that fails or is unsupported
// is reported in its result and does not stop the remaining chains.
func (e *Exporter) Export(ctx context.Context, address string, chainIDs []chain.ID) []ChainResult {
	results := make([]ChainResult, 0, len(chainIDs))
	for _, chainID := range chainIDs {
		logger := slog.Default().With("chain", string(chainID))

		descriptor, err := e.registry.Lookup(chainID)
		if err != nil {
			logger.WarnContext(ctx, fmt.Sprintf("Skipping unknown chain: %s", chainID))
			results = append(results, e.done(ChainResult{Chain: chainID, Status: StatusSkipped, Err: err}))

			continue
		}

		result, err := e.exportChain(ctx, logger, descriptor, address)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.WarnContext(ctx, fmt.Sprintf("Export of %s was interrupted", chainID))
			} else {
				logger.ErrorContext(ctx, fmt.Sprintf("Error processing %s", chainID), "error", err)
			}

			results = append(results, e.done(ChainResult{Chain: chainID, Status: StatusFailed, Err: err}))

			continue
		}

		results = append(results, e.done(result))
	}

	return results
}

func (e *Exporter) exportChain(
	ctx context.Context,
	logger *slog.Logger,
	descriptor chain.Descriptor,
	address string,
) (ChainResult, error) {
	// no new chain is started once the export has been interrupted
	if err := ctx.Err(); err != nil {
		return ChainResult{}, err
	}

	secret, err := e.resolver.ResolveCredential(ctx, descriptor.CredentialKey)
	if err != nil {
		return ChainResult{}, err
	}

	logger.InfoContext(ctx, fmt.Sprintf("Fetching transactions from %s...", descriptor.ID))

	var (
		outputPath string
		records    int
	)
	switch descriptor.Family {
	case chain.FamilyEVM:
		opts := e.options.EVM
		opts.Logger = logger
		opts.OnPage = e.progressFor(descriptor.ID)

		client := etherscan.NewHTTPClient(e.doer, descriptor.ExplorerURL, secret)
		transactions, err := etherscan.FetchTransactions(ctx, client, address, opts)
		if err != nil {
			return ChainResult{}, fmt.Errorf("failed to fetch transactions: %w", err)
		}

		outputPath, err = e.writer.WriteTransactions(descriptor.ID, transactions)
		if err != nil {
			return ChainResult{}, err
		}
		records = len(transactions)
	case chain.FamilySolana:
		opts := e.options.Solana
		opts.Logger = logger
		opts.OnBatch = e.progressFor(descriptor.ID)

		// the Solana credential is the RPC endpoint itself
		client := solana.NewRPCClient(e.doer, secret)
		signatures, err := solana.FetchSignatures(ctx, client, address, opts)
		if err != nil {
			return ChainResult{}, fmt.Errorf("failed to fetch signatures: %w", err)
		}

		outputPath, err = e.writer.WriteSignatures(descriptor.ID, signatures)
		if err != nil {
			return ChainResult{}, err
		}
		records = len(signatures)
	default:
		return ChainResult{}, fmt.Errorf("unsupported chain family: %s", descriptor.Family)
	}

	logger.InfoContext(ctx, fmt.Sprintf("Saved %d transactions to %s", records, outputPath))

	return ChainResult{
		Chain:      descriptor.ID,
		Status:     StatusSucceeded,
		Records:    records,
		OutputPath: outputPath,
	}, nil
}

func (e *Exporter) progressFor(chainID chain.ID) func(int) {
	if e.options.OnProgress == nil {
		return nil
	}

	return func(fetched int) {
		e.options.OnProgress(chainID, fetched)
	}
}

func (e *Exporter) done(result ChainResult) ChainResult {
	if e.options.OnChainDone != nil {
		e.options.OnChainDone(result)
	}

	return result
}
