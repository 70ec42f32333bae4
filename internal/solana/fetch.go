package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

const (
	// DefaultBatchSize is the maximum limit accepted by getSignaturesForAddress.
	DefaultBatchSize = 1000
	// DefaultBatchDelay paces successive RPC calls.
	DefaultBatchDelay = 200 * time.Millisecond
)

// FetchOptions tunes the pagination loop.
type FetchOptions struct {
	BatchSize  int           // signatures per call; DefaultBatchSize when zero
	BatchDelay time.Duration // pause between calls
	Logger     *slog.Logger  // slog.Default() when nil
	OnBatch    func(n int)   // invoked with the number of signatures in each accumulated batch
}

// DefaultFetchOptions returns the options used against public RPC nodes.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		BatchSize:  DefaultBatchSize,
		BatchDelay: DefaultBatchDelay,
	}
}

// FetchSignatures retrieves every signature for an address using signature-cursor pagination.
//
// Each call asks for the batch before the oldest signature seen so far, starting from the most
// recent. Only an empty batch ends the loop: a batch shorter than the batch size is not taken as
// the last one. An error object from the RPC node is logged and ends the loop; the signatures
// accumulated so far are returned without an error. Transport failures and malformed responses
// are returned as errors and nothing accumulated is kept.
func FetchSignatures(
	ctx context.Context,
	client Client,
	address string,
	opts FetchOptions,
) ([]transaction.SignatureRecord, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		records []transaction.SignatureRecord
		before  string
	)
	for batchNumber := 1; ; batchNumber++ {
		batch, err := client.GetSignaturesForAddress(ctx, address, batchSize, before)
		if err != nil {
			var rpcErr *RPCError
			if !errors.As(err, &rpcErr) {
				return nil, err
			}

			logger.ErrorContext(
				ctx,
				fmt.Sprintf("RPC node reported an error on batch %d; keeping %d signatures fetched so far", batchNumber, len(records)),
				"code",
				rpcErr.Code,
				"message",
				rpcErr.Message,
			)

			break
		}

		if len(batch) == 0 {
			break
		}

		records = append(records, batch...)
		if opts.OnBatch != nil {
			opts.OnBatch(len(batch))
		}

		before = batch[len(batch)-1].Signature

		if err := pause(ctx, opts.BatchDelay); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, fmt.Sprintf("Fetched %d signatures", len(records)))

	return records, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("interrupted between batches: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
