package termset

import (
	"reflect"
	"testing"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
)

func TestSetBasics(t *testing.T) {
	s := NewSet("cheese", "cottage", "cheese", "")
	if s.Len() != 2 {
		t.Errorf("expected 2 unique terms, got %d", s.Len())
	}
	if !s.Contains("cheese") || s.Contains("milk") {
		t.Error("membership check failed")
	}
	if got := s.Terms(); !reflect.DeepEqual(got, []string{"cheese", "cottage"}) {
		t.Errorf("terms should be sorted: %v", got)
	}
}

func TestSetEmpty(t *testing.T) {
	s := NewSet()
	if !s.IsEmpty() {
		t.Error("expected empty set")
	}
	if s.Contains("anything") {
		t.Error("empty set contains nothing")
	}
}

func TestNewExtended(t *testing.T) {
	sp := DefaultSplitter()
	e := sp.NewExtended("Cheese", "Dairy", []string{"Cottage Cheese", "Ricotta"})

	if !e.Category.Contains("cheese") {
		t.Error("category set missing cheese")
	}
	if !e.Parent.Contains("dairy") {
		t.Error("parent set missing dairy")
	}
	// Children stay separate, one set per child.
	if len(e.Children) != 2 {
		t.Fatalf("expected 2 child sets, got %d", len(e.Children))
	}
	if !e.Children[0].Contains("cottage") || !e.Children[1].Contains("ricotta") {
		t.Error("child sets not kept per child")
	}
}

func TestNewExtendedDegenerateChildren(t *testing.T) {
	sp := DefaultSplitter()
	// A child label with no extractable terms is dropped, not kept empty.
	e := sp.NewExtended("Cheese", "", []string{"&", "Ricotta"})
	if len(e.Children) != 1 {
		t.Errorf("expected degenerate child to be dropped, got %d sets", len(e.Children))
	}
}

func TestFromPathNode(t *testing.T) {
	sp := DefaultSplitter()
	p := taxonomy.NewPath("Dairy", "Cheese", "Cottage Cheese")

	mid := sp.FromPathNode(p, 1)
	if !mid.Category.Contains("cheese") {
		t.Error("category missing")
	}
	if !mid.Parent.Contains("dairy") {
		t.Error("parent context missing")
	}
	if len(mid.Children) != 1 || !mid.Children[0].Contains("cottage") {
		t.Error("child context missing")
	}

	root := sp.FromPathNode(p, 0)
	if !root.Parent.IsEmpty() {
		t.Error("root should have empty parent set")
	}

	leaf := sp.FromPathNode(p, 2)
	if len(leaf.Children) != 0 {
		t.Error("leaf should have no child sets")
	}
}

func TestContextSets(t *testing.T) {
	sp := DefaultSplitter()
	e := sp.NewExtended("Cheese", "Dairy", []string{"Ricotta"})

	ctx := e.ContextSets()
	if len(ctx) != 2 {
		t.Fatalf("expected parent + 1 child, got %d", len(ctx))
	}
	if !ctx[0].Contains("dairy") {
		t.Error("parent should come first")
	}

	all := e.AllSets()
	if len(all) != 3 || !all[0].Contains("cheese") {
		t.Error("AllSets should lead with the category set")
	}
}
