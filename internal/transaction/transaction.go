package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a normal transaction listed by an Etherscan-family explorer for an address.
type Transaction struct {
	Hash        string          // the hash of the transaction, encoded in hex
	BlockNumber uint64          // the number of the block that included the transaction
	TimeStamp   int64           // the block time, in unix seconds
	From        string          // the sending address, encoded in hex
	To          string          // the receiving address, encoded in hex; empty for contract creation
	Value       decimal.Decimal // the amount of native currency transferred, in wei
}

// Time returns the block time of the transaction in UTC.
func (t *Transaction) Time() time.Time {
	return time.Unix(t.TimeStamp, 0).UTC()
}

// SignatureRecord identifies a Solana transaction that touched an address.
type SignatureRecord struct {
	Signature string // the base58-encoded transaction signature
	Slot      uint64 // the slot in which the transaction was processed
}
