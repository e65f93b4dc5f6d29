package gutensearch

import "testing"

func TestComputeClosenessTriangleAndIsolated(t *testing.T) {
	vocab := map[string]map[string]struct{}{
		"A": vocabSet("cat", "dog", "bird"),
		"B": vocabSet("cat", "dog", "bird"),
		"C": vocabSet("cat", "dog", "bird"),
		"D": vocabSet("rocket", "moon", "star"),
	}
	g := BuildSimilarityGraph(vocab)
	scores := ComputeCloseness(g)

	if scores["D"] != 0 {
		t.Errorf("isolated vertex D should have closeness 0, got %v", scores["D"])
	}
	if scores["A"] <= 0 || scores["B"] <= 0 || scores["C"] <= 0 {
		t.Errorf("triangle members should have positive closeness: A=%v B=%v C=%v", scores["A"], scores["B"], scores["C"])
	}
	if scores["A"] != scores["B"] || scores["B"] != scores["C"] {
		t.Errorf("symmetric triangle should score all members equally: A=%v B=%v C=%v", scores["A"], scores["B"], scores["C"])
	}
}

func TestComputeClosenessSingleVertex(t *testing.T) {
	g := SimilarityGraph{"A": map[string]float64{}}
	scores := ComputeCloseness(g)
	if scores["A"] != 0 {
		t.Errorf("single vertex should have closeness 0, got %v", scores["A"])
	}
}

func TestComputeClosenessChainPrefersCenter(t *testing.T) {
	// A - B - C chain: B is strictly more central than the endpoints.
	g := SimilarityGraph{
		"A": {"B": 1.0},
		"B": {"A": 1.0, "C": 1.0},
		"C": {"B": 1.0},
	}
	scores := ComputeCloseness(g)
	if !(scores["B"] > scores["A"] && scores["B"] > scores["C"]) {
		t.Errorf("expected center B most central, got A=%v B=%v C=%v", scores["A"], scores["B"], scores["C"])
	}
	if scores["A"] != scores["C"] {
		t.Errorf("symmetric endpoints should score equally: A=%v C=%v", scores["A"], scores["C"])
	}
}
