package vocab_test

import (
	"context"
	"reflect"
	"testing"

	"podtag/internal/testsupport"
)

func edgeFixture(t *testing.T, pairs [][2]string) interface {
	Parents(string) []string
	Children(string) []string
	Siblings(string) []string
} {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenVocab(t, cfg)
	ctx := context.Background()
	for _, pair := range pairs {
		if err := store.AddEdge(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("AddEdge %v: %v", pair, err)
		}
	}
	return store
}

func TestParentsChildrenSiblings(t *testing.T) {
	graph := edgeFixture(t, [][2]string{{"A", "B"}, {"A", "C"}, {"D", "C"}})

	if got := graph.Parents("C"); !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Fatalf("Parents(C) = %v, want [A D]", got)
	}
	if got := graph.Children("A"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("Children(A) = %v, want [B C]", got)
	}
	if got := graph.Siblings("C"); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("Siblings(C) = %v, want [B]", got)
	}
	// A and D share the child C.
	if got := graph.Siblings("A"); !reflect.DeepEqual(got, []string{"D"}) {
		t.Fatalf("Siblings(A) = %v, want [D]", got)
	}
}

func TestSiblingsExcludesSelfInCycle(t *testing.T) {
	// A -> B -> A plus A -> C: the cycle makes A both parent and child of B.
	graph := edgeFixture(t, [][2]string{{"A", "B"}, {"B", "A"}, {"A", "C"}})

	for _, node := range []string{"A", "B", "C"} {
		for _, sibling := range graph.Siblings(node) {
			if sibling == node {
				t.Fatalf("Siblings(%s) contains the node itself", node)
			}
		}
	}
}

func TestRelationsOfIsolatedNode(t *testing.T) {
	graph := edgeFixture(t, [][2]string{{"A", "B"}})

	if got := graph.Parents("Z"); len(got) != 0 {
		t.Fatalf("expected no parents, got %v", got)
	}
	if got := graph.Children("Z"); len(got) != 0 {
		t.Fatalf("expected no children, got %v", got)
	}
	if got := graph.Siblings("Z"); len(got) != 0 {
		t.Fatalf("expected no siblings, got %v", got)
	}
}
