package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	ctsio "github.com/jrh3k5/multichain-txn-export/internal/io"
	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

// DefaultOutputDir is where CSV files are written unless configured otherwise.
const DefaultOutputDir = "output"

// isoTimestampLayout renders block times in UTC without an offset suffix.
const isoTimestampLayout = "2006-01-02T15:04:05"

var (
	evmHeader    = []string{"hash", "blockNumber", "timeStamp", "from", "to", "value"}
	solanaHeader = []string{"signature", "slot"}
)

// Writer writes per-chain CSV files into a directory.
// Existing files for a chain are overwritten.
type Writer struct {
	outputDir string
}

// NewWriter returns a Writer targeting the given directory; it is created on first write.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Path returns the location of the CSV file for the given chain.
func (w *Writer) Path(chainID chain.ID) string {
	return filepath.Join(w.outputDir, fmt.Sprintf("%s_transactions.csv", chainID))
}

// WriteTransactions writes EVM transactions with the columns
// hash, blockNumber, timeStamp (ISO-8601, UTC), from, to, value.
// It returns the path of the written file.
func (w *Writer) WriteTransactions(chainID chain.ID, transactions []transaction.Transaction) (string, error) {
	return w.write(chainID, func(out io.Writer) error {
		return EncodeTransactions(out, transactions)
	})
}

// WriteSignatures writes Solana signatures with the columns signature, slot.
// It returns the path of the written file.
func (w *Writer) WriteSignatures(chainID chain.ID, records []transaction.SignatureRecord) (string, error) {
	return w.write(chainID, func(out io.Writer) error {
		return EncodeSignatures(out, records)
	})
}

func (w *Writer) write(chainID chain.ID, encode func(io.Writer) error) (string, error) {
	if err := ctsio.EnsureDir(w.outputDir); err != nil {
		return "", err
	}

	filePath := w.Path(chainID)
	file, err := os.Create(filePath) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file '%s': %w", filePath, err)
	}

	if err := encode(file); err != nil {
		_ = file.Close()

		return "", fmt.Errorf("failed to write CSV file '%s': %w", filePath, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close CSV file '%s': %w", filePath, err)
	}

	return filePath, nil
}

// EncodeTransactions writes the EVM CSV representation of the given transactions, header first.
func EncodeTransactions(out io.Writer, transactions []transaction.Transaction) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(evmHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			tx.Hash,
			strconv.FormatUint(tx.BlockNumber, 10), //nolint:mnd
			tx.Time().Format(isoTimestampLayout),
			tx.From,
			tx.To,
			tx.Value.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record for transaction hash %q: %w", tx.Hash, err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// EncodeSignatures writes the Solana CSV representation of the given signatures, header first.
func EncodeSignatures(out io.Writer, records []transaction.SignatureRecord) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(solanaHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		if err := writer.Write([]string{r.Signature, strconv.FormatUint(r.Slot, 10)}); err != nil { //nolint:mnd
			return fmt.Errorf("write record for signature %q: %w", r.Signature, err)
		}
	}

	writer.Flush()

	return writer.Error()
}
