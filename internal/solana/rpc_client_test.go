package solana_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jarcoal/httpmock"
	solanapkg "github.com/jrh3k5/multichain-txn-export/internal/solana"
	"github.com/jrh3k5/multichain-txn-export/internal/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const rpcURL = "http://solana-rpc.local"

var _ = Describe("RPCClient", func() {
	AfterEach(func() {
		httpmock.Reset()
	})

	It("sends getSignaturesForAddress with a null cursor and decodes the result", func() {
		httpmock.RegisterResponder("POST", rpcURL, func(req *http.Request) (*http.Response, error) {
			Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))

			body, _ := io.ReadAll(req.Body)
			var payload map[string]any
			Expect(json.Unmarshal(body, &payload)).To(Succeed())
			Expect(payload["jsonrpc"]).To(Equal("2.0"))
			Expect(payload["method"]).To(Equal("getSignaturesForAddress"))

			params, ok := payload["params"].([]any)
			Expect(ok).To(BeTrue())
			Expect(params).To(HaveLen(2))
			Expect(params[0]).To(Equal("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))

			config, ok := params[1].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(config).To(HaveKeyWithValue("limit", BeNumerically("==", 1000)))
			Expect(config).To(HaveKey("before"))
			Expect(config["before"]).To(BeNil())

			return httpmock.NewStringResponse(http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":[
				{"signature":"sigA","slot":250000002,"err":null,"memo":null,"blockTime":1700000000},
				{"signature":"sigB","slot":250000001}
			]}`), nil
		})

		c := solanapkg.NewRPCClient(client, rpcURL)
		records, err := c.GetSignaturesForAddress(context.Background(), "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", 1000, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(Equal([]transaction.SignatureRecord{
			{Signature: "sigA", Slot: 250000002},
			{Signature: "sigB", Slot: 250000001},
		}))
	})

	It("sends the cursor when one is given", func() {
		httpmock.RegisterResponder("POST", rpcURL, func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			var payload struct {
				Params []json.RawMessage `json:"params"`
			}
			Expect(json.Unmarshal(body, &payload)).To(Succeed())
			Expect(payload.Params).To(HaveLen(2))
			Expect(string(payload.Params[1])).To(MatchJSON(`{"limit":5,"before":"sigB"}`))

			return httpmock.NewStringResponse(http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":[]}`), nil
		})

		c := solanapkg.NewRPCClient(client, rpcURL)
		records, err := c.GetSignaturesForAddress(context.Background(), "addr", 5, "sigB")
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	When("rpc response has an error field", func() {
		It("returns an error", func() {
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(http.StatusOK,
				`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid param: Invalid"}}`))

			c := solanapkg.NewRPCClient(client, rpcURL)
			records, err := c.GetSignaturesForAddress(context.Background(), "not-an-address", 1000, "")
			Expect(records).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("rpc error: -32602 Invalid param")))

			var rpcErr *solanapkg.RPCError
			Expect(errors.As(err, &rpcErr)).To(BeTrue())
			Expect(rpcErr.Code).To(Equal(-32602))
			Expect(rpcErr.Message).To(Equal("Invalid param: Invalid"))
		})
	})

	When("an entry is missing its slot", func() {
		It("returns an error", func() {
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(http.StatusOK,
				`{"jsonrpc":"2.0","id":1,"result":[{"signature":"sigA"}]}`))

			c := solanapkg.NewRPCClient(client, rpcURL)
			_, err := c.GetSignaturesForAddress(context.Background(), "addr", 1000, "")
			Expect(err).To(MatchError(ContainSubstring("missing its signature or slot")))
		})
	})

	When("the result is not a list", func() {
		It("returns an error", func() {
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(http.StatusOK,
				`{"jsonrpc":"2.0","id":1,"result":"nope"}`))

			c := solanapkg.NewRPCClient(client, rpcURL)
			_, err := c.GetSignaturesForAddress(context.Background(), "addr", 1000, "")
			Expect(err).To(MatchError(ContainSubstring("decode rpc response")))
		})
	})

	When("HTTP response is non-200", func() {
		It("returns an error", func() {
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(http.StatusTooManyRequests, "slow down"))

			c := solanapkg.NewRPCClient(client, rpcURL)
			_, err := c.GetSignaturesForAddress(context.Background(), "addr", 1000, "")
			Expect(err).To(MatchError(ContainSubstring("status 429")))
		})
	})

	When("there is a network error from the HTTP client", func() {
		It("returns an error", func() {
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewErrorResponder(fmt.Errorf("network error")))

			c := solanapkg.NewRPCClient(client, rpcURL)
			_, err := c.GetSignaturesForAddress(context.Background(), "addr", 1000, "")
			Expect(err).To(MatchError(ContainSubstring("rpc call")))
		})
	})

	When("http client is nil", func() {
		It("returns an error", func() {
			c := solanapkg.NewRPCClient(nil, rpcURL)
			_, err := c.GetSignaturesForAddress(context.Background(), "addr", 1000, "")
			Expect(err).To(MatchError("http client is nil"))
		})
	})
})
