package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	ctshttp "github.com/jrh3k5/multichain-txn-export/internal/http"
	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
	"github.com/shopspring/decimal"
)

// HTTPClient implements Client against an Etherscan-family REST endpoint,
// e.g., https://api.etherscan.io/api or https://api.polygonscan.com/api.
type HTTPClient struct {
	doer    ctshttp.Doer
	baseURL string
	apiKey  string
}

// NewHTTPClient returns a Client that uses the given HTTP client to query the explorer at baseURL.
func NewHTTPClient(doer ctshttp.Doer, baseURL string, apiKey string) *HTTPClient {
	return &HTTPClient{doer: doer, baseURL: baseURL, apiKey: apiKey}
}

type txListResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type rawTransaction struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
}

func (c *HTTPClient) GetTransactionsPage(
	ctx context.Context,
	address string,
	page int,
	offset int,
) (*Page, error) {
	if c.doer == nil {
		return nil, errors.New("http client is nil")
	}

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse explorer URL '%s': %w", c.baseURL, err)
	}

	q := reqURL.Query()
	q.Set("module", moduleAccount)
	q.Set("action", actionListTransactions)
	q.Set("address", address)
	q.Set("startblock", defaultStartBlock)
	q.Set("endblock", defaultEndBlock)
	q.Set("page", strconv.Itoa(page))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("sort", defaultSortOrder)
	q.Set("apikey", c.apiKey)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for page %d: %w", page, err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer API returned status %d for page %d", resp.StatusCode, page)
	}

	var envelope txListResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response for page %d: %w", page, err)
	}

	transactions, err := parseTransactions(envelope)
	if err != nil {
		return nil, fmt.Errorf("unexpected response shape for page %d: %w", page, err)
	}

	return &Page{
		Status:       envelope.Status,
		Message:      envelope.Message,
		Transactions: transactions,
	}, nil
}

func parseTransactions(envelope txListResponse) ([]transaction.Transaction, error) {
	// failed responses carry an error string, e.g., "Invalid API Key", in place of the list
	if len(envelope.Result) == 0 || envelope.Result[0] != '[' {
		if envelope.Status == statusOK {
			return nil, fmt.Errorf("result is not a list: %s", string(envelope.Result))
		}

		return nil, nil
	}

	var raw []rawTransaction
	if err := json.Unmarshal(envelope.Result, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode transaction list: %w", err)
	}

	transactions := make([]transaction.Transaction, 0, len(raw))
	for _, r := range raw {
		tx, err := r.toTransaction()
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (r rawTransaction) toTransaction() (transaction.Transaction, error) {
	if r.Hash == "" {
		return transaction.Transaction{}, errors.New("transaction is missing its hash")
	}

	blockNumber, err := strconv.ParseUint(r.BlockNumber, 10, 64)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse block number %q for transaction hash %q: %w", r.BlockNumber, r.Hash, err)
	}

	timeStamp, err := strconv.ParseInt(r.TimeStamp, 10, 64)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse timestamp %q for transaction hash %q: %w", r.TimeStamp, r.Hash, err)
	}

	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("parse value %q for transaction hash %q: %w", r.Value, r.Hash, err)
	}

	return transaction.Transaction{
		Hash:        r.Hash,
		BlockNumber: blockNumber,
		TimeStamp:   timeStamp,
		From:        r.From,
		To:          r.To,
		Value:       value,
	}, nil
}
