package engine

// ConflictTable is a static, symmetric adjacency relation over category
// tags. If A conflicts with B then B conflicts with A; the constructor
// symmetrizes its input so an asymmetric pair list cannot produce an
// asymmetric table.
type ConflictTable struct {
	pairs map[string]map[string]bool
}

// NewConflictTable builds a table from category pairs.
func NewConflictTable(pairs [][2]string) *ConflictTable {
	t := &ConflictTable{pairs: make(map[string]map[string]bool)}
	for _, p := range pairs {
		t.add(p[0], p[1])
		t.add(p[1], p[0])
	}
	return t
}

func (t *ConflictTable) add(a, b string) {
	if t.pairs[a] == nil {
		t.pairs[a] = make(map[string]bool)
	}
	t.pairs[a][b] = true
}

// ConflictsWith reports whether tours over the two categories may not
// run at the same time. Unknown categories conflict with nothing.
func (t *ConflictTable) ConflictsWith(a, b string) bool {
	return t.pairs[a][b]
}

// Symmetric reports whether the relation is symmetric. Always true for
// tables built by NewConflictTable; kept as an explicit guard for tests
// and for tables deserialized from configuration.
func (t *ConflictTable) Symmetric() bool {
	for a, row := range t.pairs {
		for b := range row {
			if !t.pairs[b][a] {
				return false
			}
		}
	}
	return true
}
