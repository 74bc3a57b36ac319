package road

import (
	"fmt"
	"path/filepath"
)

// LoadCatalog loads every track definition matching pattern, in file name
// order. A file that fails to load fails the whole catalog.
func LoadCatalog(pattern string) ([]*Definition, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad track pattern %q: %w", pattern, err)
	}

	defs := make([]*Definition, 0, len(files))
	for _, file := range files {
		def, err := LoadDefinitionFromFile(file)
		if err != nil {
			return nil, err
		}
		if def.Name == "" {
			def.Name = trackName(file)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// trackName derives a display name from a track file path
func trackName(file string) string {
	base := filepath.Base(file)
	return base[:len(base)-len(filepath.Ext(base))]
}
