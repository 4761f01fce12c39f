package graph

import (
	"reflect"
	"testing"
)

func TestSearchTerms_StopwordRemoval(t *testing.T) {
	got := SearchTerms("Chair of the Finance Committee")
	want := []string{"chair", "finance", "committee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSearchTerms_ShortWords(t *testing.T) {
	got := SearchTerms("HB 12 on tax")
	want := []string{"tax"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSearchTerms_PunctuationTrimming(t *testing.T) {
	got := SearchTerms("(Sen. Reyes), \"water_rights\"")
	want := []string{"sen", "reyes", "water_rights"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSearchTerms_AllStopwords(t *testing.T) {
	if got := SearchTerms("the a an in on at"); len(got) != 0 {
		t.Errorf("expected empty, got %q", got)
	}
	if got := SearchTerms(""); len(got) != 0 {
		t.Errorf("expected empty, got %q", got)
	}
}

func labelSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	nodes := []Node{
		{ID: "L1", Type: NodeLegislator, Label: "Sen. Maria Reyes"},
		{ID: "L2", Type: NodeLegislator, Label: "Rep. Dan Reyes"},
		{ID: "CM1", Type: NodeCommittee, Label: "Senate Finance Committee"},
		{ID: "B1", Type: NodeBill, Label: "Water Rights Act"},
	}
	snap, err := NewSnapshot(nodes, nil)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestSearchLabels_RanksByMatchedTerms(t *testing.T) {
	snap := labelSnapshot(t)

	got := snap.SearchLabels("maria reyes")
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got[0].ID != "L1" || got[1].ID != "L2" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}

	if got := snap.SearchLabels("of the"); len(got) != 0 {
		t.Errorf("stopword-only query should match nothing, got %d", len(got))
	}
	if got := snap.SearchLabels("lobbying"); len(got) != 0 {
		t.Errorf("expected no hits, got %d", len(got))
	}
}

func TestNodesWithIDPrefix(t *testing.T) {
	snap := labelSnapshot(t)
	got := snap.NodesWithIDPrefix("L")
	if len(got) != 2 || got[0].ID != "L1" || got[1].ID != "L2" {
		t.Errorf("unexpected prefix matches: %+v", got)
	}
	if got := snap.NodesWithIDPrefix("X"); len(got) != 0 {
		t.Errorf("expected none, got %d", len(got))
	}
}
