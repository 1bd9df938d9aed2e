package canon

// Labeler adapts NewMap to a one shot labeling call.
type Labeler struct{}

func (Labeler) CanonicalLabeling(n int, arcs []Arc) ([]int, error) {
	m, err := NewMap(n, arcs)
	if err != nil {
		return nil, err
	}
	return m.CanonicalLabeling(), nil
}
