package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	"github.com/manifoldco/promptui"
)

var errUserCanceled = errors.New("user canceled operation")

func promptAddress() (string, error) {
	prompt := promptui.Prompt{
		Label:    "Contract address",
		Validate: requireValue,
	}

	address, err := prompt.Run()
	if err != nil {
		return "", promptError("address", err)
	}

	return strings.TrimSpace(address), nil
}

func promptChains(registry *chain.Registry) (string, error) {
	ids := registry.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}

	prompt := promptui.Prompt{
		Label:    fmt.Sprintf("Chains, comma separated (%s)", strings.Join(names, ", ")),
		Validate: requireValue,
	}

	chains, err := prompt.Run()
	if err != nil {
		return "", promptError("chains", err)
	}

	return chains, nil
}

func requireValue(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("a value is required")
	}

	return nil
}

func promptError(field string, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errUserCanceled
	}

	return fmt.Errorf("%s prompt failed: %w", field, err)
}
