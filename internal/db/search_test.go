package db

import (
	"strings"
	"testing"
)

func TestBuildKNNArgs_IncludesLimit(t *testing.T) {
	q := &KNNQuery{
		IndexName: "resumedex:resumes:idx",
		Vector:    []float32{0.1, 0.2},
		K:         25,
	}

	args := buildKNNArgs(q)

	// Without an explicit LIMIT the server windows the reply to 10 entries
	// regardless of the KNN K.
	idx := indexOf(args, "LIMIT")
	if idx < 0 {
		t.Fatalf("no LIMIT clause in args: %v", args)
	}
	if idx+2 >= len(args) || args[idx+1] != "0" || args[idx+2] != "25" {
		t.Errorf("expected LIMIT 0 25, got %v", args[idx:min(idx+3, len(args))])
	}
}

func TestBuildKNNArgs_QueryString(t *testing.T) {
	q := &KNNQuery{
		IndexName: "idx",
		Vector:    []float32{0.5},
		K:         10,
	}

	args := buildKNNArgs(q)
	if args[0] != "idx" {
		t.Errorf("first arg must be the index name, got %q", args[0])
	}
	if args[1] != "*=>[KNN 10 @vector $BLOB]" {
		t.Errorf("unfiltered query string = %q", args[1])
	}
}

func TestBuildKNNArgs_FilterWrapsQuery(t *testing.T) {
	q := &KNNQuery{
		IndexName: "idx",
		Vector:    []float32{0.5},
		K:         5,
		Filter:    "@skills:{python}",
	}

	args := buildKNNArgs(q)
	if args[1] != "(@skills:{python})=>[KNN 5 @vector $BLOB]" {
		t.Errorf("filtered query string = %q", args[1])
	}
}

func TestBuildKNNArgs_ReturnFields(t *testing.T) {
	q := &KNNQuery{
		IndexName:    "idx",
		Vector:       []float32{0.5},
		K:            5,
		ReturnFields: []string{"__content", "__meta", "__vector_score"},
	}

	args := buildKNNArgs(q)
	idx := indexOf(args, "RETURN")
	if idx < 0 {
		t.Fatalf("no RETURN clause in args: %v", args)
	}
	if args[idx+1] != "3" || args[idx+2] != "__content" {
		t.Errorf("unexpected RETURN clause: %v", args[idx:idx+5])
	}
}

func TestBuildKNNArgs_ClauseOrder(t *testing.T) {
	q := &KNNQuery{
		IndexName:    "idx",
		Vector:       []float32{0.5},
		K:            5,
		ReturnFields: []string{"__content"},
	}

	joined := strings.Join(buildKNNArgs(q), " ")
	limitPos := strings.Index(joined, "LIMIT")
	paramsPos := strings.Index(joined, "PARAMS")
	dialectPos := strings.Index(joined, "DIALECT")

	if !(limitPos < paramsPos && paramsPos < dialectPos) {
		t.Errorf("clause order wrong: %q", joined)
	}
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}
