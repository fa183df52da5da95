package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// BlockedNamesRegistry defines the interface for blocked-name lookups
//
//go:generate mockgen -source=blocked_names.go -destination=../mocks/blocked_names.go -package=mocks -mock_names=BlockedNamesRegistry=MockBlockedNamesRegistry
type BlockedNamesRegistry interface {
	// IsBlocked checks whether a name may not be adopted through a name change
	IsBlocked(name string) bool
}

// BlockedNamesData represents the structure of the blocked-names JSON file.
// Names match exactly after standardization; prefixes match any name that
// starts with them (e.g. the reserved "mod " staff prefix).
type BlockedNamesData struct {
	Names    []string `json:"names"`
	Prefixes []string `json:"prefixes"`
}

// blockedNamesRegistry is the internal implementation of BlockedNamesRegistry
type blockedNamesRegistry struct {
	data *BlockedNamesData
	// Fast lookup map: standardized name -> true
	names    map[string]bool
	prefixes []string
}

// LoadBlockedNames loads the blocked-names registry from a JSON file
func LoadBlockedNames(filePath string) (BlockedNamesRegistry, error) {
	// Read the file using the absolute path
	data, err := os.ReadFile(filePath) //nolint:gosec,G304 // This should be a trusted file
	if err != nil {
		return nil, fmt.Errorf("failed to read blocked-names file: %w", err)
	}

	// Parse JSON
	var blockedData BlockedNamesData
	if err := json.Unmarshal(data, &blockedData); err != nil {
		return nil, fmt.Errorf("failed to parse blocked-names JSON: %w", err)
	}

	// Build lookup map
	reg := &blockedNamesRegistry{
		data:  &blockedData,
		names: make(map[string]bool),
	}

	for _, name := range blockedData.Names {
		reg.names[domain.Username(name).Standardize()] = true
	}
	for _, prefix := range blockedData.Prefixes {
		// Fold separators but keep trailing spaces: the reserved "mod "
		// prefix must not match names like "modest"
		p := strings.ToLower(prefix)
		p = strings.ReplaceAll(p, "_", " ")
		p = strings.ReplaceAll(p, "-", " ")
		reg.prefixes = append(reg.prefixes, p)
	}

	return reg, nil
}

// IsBlocked checks whether a name may not be adopted through a name change
func (r *blockedNamesRegistry) IsBlocked(name string) bool {
	if r == nil {
		return false
	}
	standardized := domain.Username(name).Standardize()
	if r.names[standardized] {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(standardized, prefix) {
			return true
		}
	}
	return false
}
