package etherscan

import (
	"context"

	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

const (
	statusOK               = "1"
	messageNoTransactions  = "No transactions found"
	defaultStartBlock      = "0"
	defaultEndBlock        = "99999999"
	defaultSortOrder       = "asc"
	moduleAccount          = "account"
	actionListTransactions = "txlist"
)

// Client defines the interface for interacting with the Etherscan API.
// An individual client instance is bound to a particular chain.
type Client interface {
	// GetTransactionsPage retrieves one page of normal transactions for the given address, oldest first.
	// The page is a one-based index; the offset is the number of transactions in each page.
	GetTransactionsPage(ctx context.Context, address string, page int, offset int) (*Page, error)
}

// Page is a single decoded txlist response.
type Page struct {
	Status       string                    // "1" on success
	Message      string                    // e.g., "OK" or "No transactions found"
	Transactions []transaction.Transaction // empty when the explorer reports a failure
}

// OK reports whether the explorer flagged the response as successful.
func (p *Page) OK() bool {
	return p.Status == statusOK
}

// IsFailure reports whether the response is an API-level failure.
// An unsuccessful status carrying the "No transactions found" message is the explorer's way
// of saying there is no data and is not a failure.
func (p *Page) IsFailure() bool {
	return !p.OK() && p.Message != messageNoTransactions
}
