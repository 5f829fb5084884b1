package domain

// DuplicateIndex is the set of semantic keys of existing extract types.
// The key is every attribute except the identifier, free-text fields included.
type DuplicateIndex struct {
	keys map[Fields]struct{}
}

// NewDuplicateIndex builds an index over records.
func NewDuplicateIndex(records []*ExtractType) *DuplicateIndex {
	keys := make(map[Fields]struct{}, len(records))
	for _, r := range records {
		keys[r.Fields()] = struct{}{}
	}
	return &DuplicateIndex{keys: keys}
}

// Contains reports whether a record with the same attributes is indexed.
func (d *DuplicateIndex) Contains(f Fields) bool {
	_, ok := d.keys[f]
	return ok
}

// Len returns the number of distinct keys.
func (d *DuplicateIndex) Len() int {
	return len(d.keys)
}

// Check returns a DuplicateError if candidate's attributes are already indexed.
func (d *DuplicateIndex) Check(candidate *ExtractType) error {
	if d.Contains(candidate.Fields()) {
		return &DuplicateError{Fields: candidate.Fields()}
	}
	return nil
}
