package directory

import "context"

// Memory is the default directory, seeded once from the config tables and
// read-only afterwards, so concurrent use needs no locking. A "*" entry
// opens a kind to any non-empty key.
type Memory struct {
	keys map[string]map[string]struct{}
	open map[string]bool
}

// NewMemory builds a directory from kind -> known-keys seed lists.
func NewMemory(seed map[string][]string) *Memory {
	m := &Memory{
		keys: make(map[string]map[string]struct{}, len(seed)),
		open: make(map[string]bool, len(seed)),
	}
	for kind, keys := range seed {
		set := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			if k == "*" {
				m.open[kind] = true
				continue
			}
			set[k] = struct{}{}
		}
		m.keys[kind] = set
	}
	return m
}

// Exists reports whether key is known under kind.
func (m *Memory) Exists(_ context.Context, kind, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	if m.open[kind] {
		return true, nil
	}
	_, ok := m.keys[kind][key]
	return ok, nil
}
