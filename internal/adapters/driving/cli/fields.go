package cli

import (
	"fmt"
	"strings"
)

// parseSetFields turns repeated --set "Name=value" flags into the field
// map the record repositories consume. Field names are the stored JSON
// keys, so spaces are expected ("Actual Repair Date=2024-01-01").
func parseSetFields(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("nothing to update: pass at least one --set \"Name=value\"")
	}

	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected \"Name=value\"", pair)
		}
		fields[name] = value
	}
	return fields, nil
}
