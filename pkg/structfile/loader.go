package structfile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Load reads and validates a single structure template from the filesystem.
func Load(fsys fs.FS, name string) (*Structure, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read structure file: %w", err)
	}

	var s Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not unmarshal structure json: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadDir loads every .json template under dir, keyed by structure name.
// The result is returned in a deterministic order-independent form; use
// Names for a sorted listing.
func LoadDir(fsys fs.FS, dir string) (map[string]*Structure, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not list structure dir: %w", err)
	}

	out := make(map[string]*Structure, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := Load(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := out[s.Name]; dup {
			return nil, fmt.Errorf("duplicate structure name %q", s.Name)
		}
		out[s.Name] = s
	}
	return out, nil
}

// Names returns the sorted structure names of a loaded set.
func Names(set map[string]*Structure) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
