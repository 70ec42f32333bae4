package chain

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Overrides replaces the explorer endpoint of EVM chains, e.g., to route through a proxy.
type Overrides struct {
	Endpoints map[ID]string // chain identifier to explorer API URL
}

type yamlOverrides struct {
	Endpoints map[string]string `yaml:"endpoints"`
}

// OverridesFromYAML reads endpoint overrides from a YAML representation:
//
//	endpoints:
//	  ethereum: https://etherscan-proxy.internal/api
func OverridesFromYAML(reader io.Reader) (*Overrides, error) {
	var ymlOverrides yamlOverrides
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&ymlOverrides); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode endpoint overrides from YAML: %w", err)
	}

	overrides := &Overrides{Endpoints: make(map[ID]string, len(ymlOverrides.Endpoints))}
	for chainID, endpoint := range ymlOverrides.Endpoints {
		overrides.Endpoints[ID(chainID)] = endpoint
	}

	return overrides, nil
}

// WithOverrides returns a copy of the registry with the given endpoint overrides applied.
// Overrides for unknown or non-EVM chains are rejected.
func (r *Registry) WithOverrides(overrides *Overrides) (*Registry, error) {
	copied := &Registry{descriptors: make(map[ID]Descriptor, len(r.descriptors))}
	for id, d := range r.descriptors {
		copied.descriptors[id] = d
	}

	if overrides == nil {
		return copied, nil
	}

	for id, endpoint := range overrides.Endpoints {
		d, ok := copied.descriptors[id]
		if !ok {
			return nil, fmt.Errorf("cannot override endpoint: %w: '%s'", ErrUnknownChain, id)
		}

		if d.Family != FamilyEVM {
			return nil, fmt.Errorf("cannot override endpoint of chain '%s': its endpoint is a credential", id)
		}

		if endpoint == "" {
			return nil, fmt.Errorf("endpoint override for chain '%s' is empty", id)
		}

		d.ExplorerURL = endpoint
		copied.descriptors[id] = d
	}

	return copied, nil
}
