package fieldmask

// pathSet deduplicates paths while preserving first-occurrence order from
// the original traversal.
type pathSet struct {
	paths []string
	index map[string]int
}

func newPathSet() *pathSet {
	return &pathSet{
		paths: make([]string, 0),
		index: make(map[string]int),
	}
}

func (ps *pathSet) add(paths ...string) {
	for _, p := range paths {
		if _, exists := ps.index[p]; exists {
			continue
		}
		ps.index[p] = len(ps.paths)
		ps.paths = append(ps.paths, p)
	}
}

func (ps *pathSet) ordered() []string {
	return ps.paths
}
