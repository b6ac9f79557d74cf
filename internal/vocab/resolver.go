package vocab

import "sort"

// Parents returns every node with an edge pointing at name.
func (s *Store) Parents(name string) []string {
	set := make(map[string]struct{})
	for _, edge := range s.edges {
		if edge.Target == name {
			set[edge.Parent] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Children returns every node name points an edge at.
func (s *Store) Children(name string) []string {
	set := make(map[string]struct{})
	for _, edge := range s.edges {
		if edge.Parent == name {
			set[edge.Target] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Siblings returns the one-hop derived relation: nodes sharing an immediate
// parent with name, plus nodes sharing an immediate child with it. The node
// itself is never included, even when the graph cycles through it.
func (s *Store) Siblings(name string) []string {
	set := make(map[string]struct{})

	for _, parent := range s.Parents(name) {
		for _, edge := range s.edges {
			if edge.Parent == parent && edge.Target != name {
				set[edge.Target] = struct{}{}
			}
		}
	}
	for _, child := range s.Children(name) {
		for _, edge := range s.edges {
			if edge.Target == child && edge.Parent != name {
				set[edge.Parent] = struct{}{}
			}
		}
	}

	delete(set, name)
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
