package engine

import "slices"

// selection is a set of ids that remembers insertion order. The first id
// drives single-object operations such as z-order and resize pivots.
type selection struct {
	ids []string
}

func (s *selection) has(id string) bool {
	return slices.Contains(s.ids, id)
}

func (s *selection) add(id string) bool {
	if id == "" || s.has(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *selection) remove(id string) bool {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

// toggle adds id when absent and removes it otherwise. It reports whether id
// is selected afterwards.
func (s *selection) toggle(id string) bool {
	if s.remove(id) {
		return false
	}
	return s.add(id)
}

func (s *selection) clear() {
	s.ids = nil
}

func (s *selection) first() (string, bool) {
	if len(s.ids) == 0 {
		return "", false
	}
	return s.ids[0], true
}

func (s *selection) list() []string {
	return slices.Clone(s.ids)
}

func (s *selection) len() int {
	return len(s.ids)
}
