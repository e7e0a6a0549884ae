// Package seed reads global word lists for import.
package seed

import (
	"fmt"
	"io"
	"os"

	"cardbot/internal/domain"

	"gopkg.in/yaml.v3"
)

// ReadFile reads a YAML list of word pairs
func ReadFile(path string) ([]domain.WordPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a YAML list of {english, russian} entries
func Read(r io.Reader) ([]domain.WordPair, error) {
	var pairs []domain.WordPair
	if err := yaml.NewDecoder(r).Decode(&pairs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return pairs, nil
}
