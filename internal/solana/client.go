package solana

import (
	"context"

	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

// Client retrieves signature history from a Solana RPC node.
type Client interface {
	// GetSignaturesForAddress returns up to limit signatures for the address, newest first,
	// starting strictly before the given signature. An empty before starts from the most recent.
	GetSignaturesForAddress(ctx context.Context, address string, limit int, before string) ([]transaction.SignatureRecord, error)
}
