package seeds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Load reads a JSONC file holding an array of seed strings and parses them.
func Load(path string) ([]Seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading seeds file %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var texts []string
	if err := json.Unmarshal(clean, &texts); err != nil {
		return nil, fmt.Errorf("parsing seeds file %q: %w", path, err)
	}

	parsed, err := ParseAll(texts)
	if err != nil {
		return nil, fmt.Errorf("parsing seeds file %q: %w", path, err)
	}

	return parsed, nil
}
