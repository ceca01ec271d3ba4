package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"reviewrag/internal/domain"
)

// LoadRaw reads the scraper's output: a JSON list of raw records.
func LoadRaw(path string) ([]domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw corpus: %w", err)
	}
	var records []domain.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode raw corpus %s: %w", path, err)
	}
	return records, nil
}

// LoadCleaned reads a previously saved cleaned-corpus artifact.
func LoadCleaned(path string) ([]domain.Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cleaned corpus: %w", err)
	}
	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("decode cleaned corpus %s: %w", path, err)
	}
	return reviews, nil
}

// SaveCleaned writes the cleaned corpus as the hand-off artifact between
// the cleaning stage and the indexing stage. The format round-trips
// losslessly through LoadCleaned.
func SaveCleaned(path string, reviews []domain.Review) error {
	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cleaned corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cleaned corpus %s: %w", path, err)
	}
	return nil
}
