package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ctshttp "github.com/jrh3k5/multichain-txn-export/internal/http"
	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
)

const methodGetSignaturesForAddress = "getSignaturesForAddress"

// RPCClient implements Client by calling a JSON-RPC endpoint.
type RPCClient struct {
	doer   ctshttp.Doer
	rpcURL string
}

// NewRPCClient returns a Client that uses the provided HTTP client
// and RPC node URL to perform JSON-RPC calls.
func NewRPCClient(doer ctshttp.Doer, rpcURL string) *RPCClient {
	return &RPCClient{doer: doer, rpcURL: rpcURL}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// signaturesConfig is sent with a null "before" on the first call.
type signaturesConfig struct {
	Limit  int     `json:"limit"`
	Before *string `json:"before"`
}

// RPCError is an error object returned by the RPC node, e.g., when it rate-limits the caller.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error: %d %s", e.Code, e.Message)
}

type signatureResult struct {
	Signature string  `json:"signature"`
	Slot      *uint64 `json:"slot"`
}

type rpcResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      int               `json:"id"`
	Result  []signatureResult `json:"result"`
	Error   *RPCError         `json:"error,omitempty"`
}

func (r *RPCClient) GetSignaturesForAddress(
	ctx context.Context,
	address string,
	limit int,
	before string,
) ([]transaction.SignatureRecord, error) {
	if r.doer == nil {
		return nil, errors.New("http client is nil")
	}

	config := signaturesConfig{Limit: limit}
	if before != "" {
		config.Before = &before
	}

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  methodGetSignaturesForAddress,
		Params:  []any{address, config},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.rpcURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc endpoint returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	records := make([]transaction.SignatureRecord, 0, len(rpcResp.Result))
	for i, res := range rpcResp.Result {
		if res.Signature == "" || res.Slot == nil {
			return nil, fmt.Errorf("signature entry %d is missing its signature or slot", i)
		}

		records = append(records, transaction.SignatureRecord{
			Signature: res.Signature,
			Slot:      *res.Slot,
		})
	}

	return records, nil
}
