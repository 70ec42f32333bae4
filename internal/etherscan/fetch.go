package etherscan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

const (
	// DefaultPageSize is the largest page the Etherscan family serves for txlist.
	DefaultPageSize = 10000
	// DefaultPageDelay keeps successive page requests under the free-tier rate limits.
	DefaultPageDelay = 200 * time.Millisecond
)

// FetchOptions tunes the pagination loop.
type FetchOptions struct {
	PageSize  int           // transactions per page; DefaultPageSize when zero
	PageDelay time.Duration // pause between pages
	Logger    *slog.Logger  // slog.Default() when nil
	OnPage    func(n int)   // invoked with the number of transactions in each accumulated page
}

// DefaultFetchOptions returns the options used against public explorers.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		PageSize:  DefaultPageSize,
		PageDelay: DefaultPageDelay,
	}
}

// FetchTransactions retrieves the full transaction list of an address using page-number pagination.
//
// Pages are requested from 1 upwards until a page comes back empty or shorter than the page size.
// An API-level failure is logged and ends the loop; the transactions accumulated so far are returned
// without an error. Transport failures and malformed responses are returned as errors.
// An explorer that keeps returning full pages is followed indefinitely.
func FetchTransactions(
	ctx context.Context,
	client Client,
	address string,
	opts FetchOptions,
) ([]transaction.Transaction, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var transactions []transaction.Transaction
	for pageNumber := 1; ; pageNumber++ {
		page, err := client.GetTransactionsPage(ctx, address, pageNumber, pageSize)
		if err != nil {
			return nil, err
		}

		if page.IsFailure() {
			logger.ErrorContext(
				ctx,
				fmt.Sprintf("Explorer reported an error on page %d; keeping %d transactions fetched so far", pageNumber, len(transactions)),
				"message",
				page.Message,
			)

			break
		}

		if len(page.Transactions) == 0 {
			break
		}

		transactions = append(transactions, page.Transactions...)
		if opts.OnPage != nil {
			opts.OnPage(len(page.Transactions))
		}

		if len(page.Transactions) < pageSize {
			break
		}

		if err := pause(ctx, opts.PageDelay); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, fmt.Sprintf("Fetched %d transactions", len(transactions)))

	return transactions, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("interrupted between pages: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
