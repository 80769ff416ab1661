package document

// KV is one insertion-order-preserving entry of an orderedMap.
type KV struct {
	Key   string
	Value Value
}

// orderedMap is a small insertion-ordered string-keyed map, adapted from
// the teacher's util.AttributeList (a slice-backed ordered Get/Set/Pop/Merge
// list). Lookups are O(n), which is the same trade-off the teacher makes:
// CIF blocks and tables hold at most a few hundred entries, well within
// where a linear scan beats the bookkeeping of a real ordered-map type.
//
// fold normalizes a key before comparison/storage-order lookup: identity
// for CIF 2.0 table keys (case-sensitive, spec.md §3), strings.ToLower for
// block item tags (case-insensitive, spec.md §4.3) while the original
// casing is kept in Key for display.
type orderedMap struct {
	fold    func(string) string
	entries []KV
}

func newOrderedMap(fold func(string) string) *orderedMap {
	return &orderedMap{fold: fold}
}

// Set appends key/value, or overwrites the value of an existing entry with
// the same folded key, preserving its original position.
func (m *orderedMap) Set(key string, v Value) {
	folded := m.fold(key)

	for i, e := range m.entries {
		if m.fold(e.Key) == folded {
			m.entries[i].Value = v
			return
		}
	}

	m.entries = append(m.entries, KV{Key: key, Value: v})
}

// Get returns the value stored under key (matched via fold) and whether it
// was present.
func (m *orderedMap) Get(key string) (Value, bool) {
	folded := m.fold(key)

	for _, e := range m.entries {
		if m.fold(e.Key) == folded {
			return e.Value, true
		}
	}

	return Value{}, false
}

// Has reports whether key is present.
func (m *orderedMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the original-cased keys in insertion order.
func (m *orderedMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}

	return keys
}

// Entries returns a copy of the ordered key/value pairs.
func (m *orderedMap) Entries() []KV {
	out := make([]KV, len(m.entries))
	copy(out, m.entries)

	return out
}

func (m *orderedMap) Len() int {
	return len(m.entries)
}
