package credentials

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Read parses a key=value environment file into a map. Comments and blank
// lines are ignored. Used for round-trip verification and for displaying a
// project's current configuration.
func Read(path string) (map[string]string, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read environment file %s: %w", path, err)
	}

	out := make(map[string]string)
	for _, key := range f.Section("").Keys() {
		out[key.Name()] = key.Value()
	}
	return out, nil
}
