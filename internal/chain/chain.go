package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownChain is returned when a chain identifier is not part of the supported set.
var ErrUnknownChain = errors.New("unknown chain")

// ID identifies a supported chain, e.g., "ethereum".
type ID string

const (
	Ethereum  ID = "ethereum"
	Polygon   ID = "polygon"
	BSC       ID = "bsc"
	Base      ID = "base"
	Avalanche ID = "avalanche"
	Solana    ID = "solana"
)

// Family determines which fetch strategy and CSV schema apply to a chain.
type Family int

const (
	FamilyEVM Family = iota
	FamilySolana
)

func (f Family) String() string {
	switch f {
	case FamilyEVM:
		return "evm"
	case FamilySolana:
		return "solana"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// Descriptor describes where a chain's history comes from and which credential it needs.
type Descriptor struct {
	ID            ID     // the chain identifier
	Family        Family // the chain family
	ExplorerURL   string // the Etherscan-family API endpoint; empty for Solana
	CredentialKey string // the credential store key holding the API key or RPC URL
}

// Registry is a read-only lookup of chain descriptors.
type Registry struct {
	descriptors map[ID]Descriptor
}

// DefaultRegistry returns the registry of all supported chains.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Descriptor{ID: Ethereum, Family: FamilyEVM, ExplorerURL: "https://api.etherscan.io/api", CredentialKey: "ETHERSCAN_API_KEY"},
		Descriptor{ID: Polygon, Family: FamilyEVM, ExplorerURL: "https://api.polygonscan.com/api", CredentialKey: "POLYGONSCAN_API_KEY"},
		Descriptor{ID: BSC, Family: FamilyEVM, ExplorerURL: "https://api.bscscan.com/api", CredentialKey: "BSCSCAN_API_KEY"},
		Descriptor{ID: Base, Family: FamilyEVM, ExplorerURL: "https://api.basescan.org/api", CredentialKey: "BASESCAN_API_KEY"},
		Descriptor{ID: Avalanche, Family: FamilyEVM, ExplorerURL: "https://api.snowtrace.io/api", CredentialKey: "AVASCAN_API_KEY"},
		Descriptor{ID: Solana, Family: FamilySolana, CredentialKey: "SOLANA_RPC_URL"},
	)
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{descriptors: make(map[ID]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		r.descriptors[d.ID] = d
	}

	return r
}

// Lookup returns the descriptor for the given chain identifier.
func (r *Registry) Lookup(id ID) (Descriptor, error) {
	d, ok := r.descriptors[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: '%s'", ErrUnknownChain, id)
	}

	return d, nil
}

// IDs returns the supported chain identifiers in alphabetical order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.descriptors))
	for id := range r.descriptors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// ParseList splits a comma-separated chain list, trimming and lower-casing each entry.
// Blank entries are kept so the caller can warn about them like any other unknown chain;
// blank input yields no entries. No validation against a registry happens here.
func ParseList(s string) []ID {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	ids := make([]ID, 0, len(parts))
	for _, part := range parts {
		ids = append(ids, ID(strings.ToLower(strings.TrimSpace(part))))
	}

	return ids
}
