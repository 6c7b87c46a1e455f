package population

// Snapshot is the serialized form of a population. Fixture files, the seed
// tooling and the sqlite store all exchange populations in this shape.
type Snapshot struct {
	People      []Person    `json:"people"`
	Families    []Family    `json:"families"`
	Communities []Community `json:"communities"`
}

// Registry indexes the snapshot for decoding.
func (s Snapshot) Registry() (*Registry, error) {
	return NewRegistry(s.People, s.Families, s.Communities)
}
