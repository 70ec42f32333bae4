package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ctsio "github.com/jrh3k5/multichain-txn-export/internal/io"
)

const defaultFileName = ".multichain_config.json"

// Store holds API keys and RPC URLs keyed by credential name, backed by a JSON file.
// The whole file is rewritten on every Persist.
type Store struct {
	path   string
	values map[string]string
}

// DefaultPath returns the location of the credential file in the user's home directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, defaultFileName), nil
}

// Load reads the credential file at the given path.
// A missing file yields an empty store; the file is created on the first Persist.
func Load(path string) (*Store, error) {
	store := &Store{path: path, values: make(map[string]string)}

	exists, err := ctsio.FileExists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		return store, nil
	}

	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open credential file '%s': %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := json.NewDecoder(ctsio.StripUTF8BOM(file)).Decode(&store.values); err != nil {
		return nil, fmt.Errorf("failed to decode credential file '%s': %w", path, err)
	}

	// a file containing only "null" decodes into a nil map
	if store.values == nil {
		store.values = make(map[string]string)
	}

	return store, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the credential stored under the given key, if any.
func (s *Store) Get(key string) (string, bool) {
	value, ok := s.values[key]

	return value, ok && value != ""
}

// Set stores a credential in memory; call Persist to write it to disk.
func (s *Store) Set(key string, value string) {
	s.values[key] = value
}

// Persist rewrites the backing file with the current contents of the store.
func (s *Store) Persist() error {
	b, err := json.MarshalIndent(s.values, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, append(b, '\n'), 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write credential file '%s': %w", s.path, err)
	}

	return nil
}
