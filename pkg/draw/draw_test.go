package draw

import (
	"math"
	"sort"
	"testing"

	"github.com/paulmach/orb"

	"sidewalkify/pkg/graph"
	"sidewalkify/pkg/streets"
)

func run(t *testing.T, sts []streets.Street) []streets.Sidewalk {
	t.Helper()
	g, err := graph.CreateGraph(sts, graph.DefaultOptions())
	if err != nil {
		t.Fatalf("CreateGraph: %v", err)
	}
	return DrawSidewalks(graph.FindPaths(g), Options{Resolution: 1})
}

func lineClose(a, b orb.LineString) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i][0]-b[i][0]) > 1e-9 || math.Abs(a[i][1]-b[i][1]) > 1e-9 {
			return false
		}
	}
	return true
}

func findSidewalk(t *testing.T, sws []streets.Sidewalk, id string, forward bool) streets.Sidewalk {
	t.Helper()
	for _, s := range sws {
		if s.StreetID == id && s.Forward == forward {
			return s
		}
	}
	t.Fatalf("no sidewalk for street %q forward=%v", id, forward)
	return streets.Sidewalk{}
}

func TestDrawSingleStraightStreet(t *testing.T) {
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {100, 0}}, SWLeft: 2, SWRight: 3},
	})

	if len(sws) != 2 {
		t.Fatalf("len(sidewalks) = %d, want 2", len(sws))
	}

	left := findSidewalk(t, sws, "a", true)
	if !lineClose(left.Geometry, orb.LineString{{0, 2}, {100, 2}}) {
		t.Errorf("left sidewalk = %v, want y=+2 in forward order", left.Geometry)
	}

	right := findSidewalk(t, sws, "a", false)
	if !lineClose(right.Geometry, orb.LineString{{100, -3}, {0, -3}}) {
		t.Errorf("right sidewalk = %v, want y=-3 in reverse order", right.Geometry)
	}
}

func TestDrawZeroOffsetsEmitNothing(t *testing.T) {
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {100, 0}}, SWLeft: 0, SWRight: 0},
	})

	if len(sws) != 0 {
		t.Fatalf("len(sidewalks) = %d, want 0", len(sws))
	}
}

func TestDrawTJunctionCornerTrim(t *testing.T) {
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {10, 0}}, SWLeft: 1, SWRight: 1},
		{ID: "b", Geometry: orb.LineString{{10, 0}, {10, 10}}, SWLeft: 1, SWRight: 1},
	})

	if len(sws) != 4 {
		t.Fatalf("len(sidewalks) = %d, want 4", len(sws))
	}

	// The two inner sidewalks meet exactly at the trimmed corner (9, 1).
	aFwd := findSidewalk(t, sws, "a", true)
	if !lineClose(aFwd.Geometry, orb.LineString{{0, 1}, {9, 1}}) {
		t.Errorf("a forward = %v, want trimmed to (9,1)", aFwd.Geometry)
	}
	bFwd := findSidewalk(t, sws, "b", true)
	if !lineClose(bFwd.Geometry, orb.LineString{{9, 1}, {9, 10}}) {
		t.Errorf("b forward = %v, want starting at (9,1)", bFwd.Geometry)
	}

	// The outer sidewalks do not cross; they are bridged at the midpoint
	// of the gap around the junction.
	bRev := findSidewalk(t, sws, "b", false)
	if !lineClose(bRev.Geometry, orb.LineString{{11, 10}, {10.5, -0.5}}) {
		t.Errorf("b reverse = %v, want bridged end at (10.5,-0.5)", bRev.Geometry)
	}
	aRev := findSidewalk(t, sws, "a", false)
	if !lineClose(aRev.Geometry, orb.LineString{{10.5, -0.5}, {0, -1}}) {
		t.Errorf("a reverse = %v, want bridged start at (10.5,-0.5)", aRev.Geometry)
	}
}

func TestDrawSquareBlockRings(t *testing.T) {
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {10, 0}}, SWLeft: 1, SWRight: 1},
		{ID: "b", Geometry: orb.LineString{{10, 0}, {10, 10}}, SWLeft: 1, SWRight: 1},
		{ID: "c", Geometry: orb.LineString{{10, 10}, {0, 10}}, SWLeft: 1, SWRight: 1},
		{ID: "d", Geometry: orb.LineString{{0, 10}, {0, 0}}, SWLeft: 1, SWRight: 1},
	})

	if len(sws) != 8 {
		t.Fatalf("len(sidewalks) = %d, want 8", len(sws))
	}

	// Interior ring: four forward sidewalks mutually trimmed at the inner
	// corners, each 8 units long.
	inner := map[string]orb.LineString{
		"a": {{1, 1}, {9, 1}},
		"b": {{9, 1}, {9, 9}},
		"c": {{9, 9}, {1, 9}},
		"d": {{1, 9}, {1, 1}},
	}
	for id, want := range inner {
		got := findSidewalk(t, sws, id, true)
		if !lineClose(got.Geometry, want) {
			t.Errorf("interior %q = %v, want %v", id, got.Geometry, want)
		}
	}

	// Exterior ring: reverse sidewalks bridged corner to corner outside
	// the block.
	for _, id := range []string{"a", "b", "c", "d"} {
		got := findSidewalk(t, sws, id, false)
		if l := length(got.Geometry); l <= 10 {
			t.Errorf("exterior %q length = %v, want > 10", id, l)
		}
	}
}

func TestDrawDeadEndSpurKeepsFreeEnd(t *testing.T) {
	sws := run(t, []streets.Street{
		{ID: "spur", Geometry: orb.LineString{{0, 0}, {5, 0}}, SWLeft: 1, SWRight: 1},
		{ID: "main1", Geometry: orb.LineString{{5, 0}, {5, 5}}, SWLeft: 1, SWRight: 1},
		{ID: "main2", Geometry: orb.LineString{{5, 0}, {5, -5}}, SWLeft: 1, SWRight: 1},
	})

	// Both spur sidewalks keep their natural offset end at the free end
	// x=0; no end cap is added there.
	spurFwd := findSidewalk(t, sws, "spur", true)
	if spurFwd.Geometry[0] != (orb.Point{0, 1}) {
		t.Errorf("spur forward starts at %v, want (0,1)", spurFwd.Geometry[0])
	}
	spurRev := findSidewalk(t, sws, "spur", false)
	if last := spurRev.Geometry[len(spurRev.Geometry)-1]; last != (orb.Point{0, -1}) {
		t.Errorf("spur reverse ends at %v, want (0,-1)", last)
	}
}

func TestDrawZeroOffsetSideUsesVirtualTrim(t *testing.T) {
	// Street a has no right sidewalk. Where b's sidewalk runs up to a at
	// the junction, a virtual offset of a's centerline stands in as the
	// trim target, so b's sidewalk stops at the street edge instead of
	// running past it.
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {10, 0}}, SWLeft: 1, SWRight: 0},
		{ID: "b", Geometry: orb.LineString{{10, 0}, {10, -10}}, SWLeft: 1, SWRight: 1},
	})

	for _, s := range sws {
		if s.StreetID == "a" && !s.Forward {
			t.Fatal("street a has sw_right=0 but emitted a right sidewalk")
		}
	}

	// b's west-side sidewalk runs north toward street a and gets cut back
	// at the 7-unit virtual offset of a's centerline.
	bRev := findSidewalk(t, sws, "b", false)
	if !lineClose(bRev.Geometry, orb.LineString{{9, -10}, {9, -7}}) {
		t.Errorf("b reverse = %v, want trimmed to the virtual offset at (9,-7)", bRev.Geometry)
	}
}

func TestDrawReversalSymmetry(t *testing.T) {
	forward := []streets.Street{
		{ID: "a", Geometry: orb.LineString{{0, 0}, {10, 0}}, SWLeft: 2, SWRight: 1},
		{ID: "b", Geometry: orb.LineString{{10, 0}, {10, 10}}, SWLeft: 1, SWRight: 2},
	}
	reversed := make([]streets.Street, len(forward))
	for i, s := range forward {
		geom := s.Geometry.Clone()
		geom.Reverse()
		reversed[i] = streets.Street{ID: s.ID, Geometry: geom, SWLeft: s.SWRight, SWRight: s.SWLeft}
	}

	a := run(t, forward)
	b := run(t, reversed)

	if len(a) != len(b) {
		t.Fatalf("sidewalk counts differ: %d vs %d", len(a), len(b))
	}

	// Same geometry set, with the forward bit flipped.
	for _, s := range a {
		match := findSidewalk(t, b, s.StreetID, !s.Forward)
		if !lineClose(s.Geometry, match.Geometry) {
			t.Errorf("street %q: %v != reversed-input %v", s.StreetID, s.Geometry, match.Geometry)
		}
	}
}

func TestDrawAcuteCorner(t *testing.T) {
	// Two streets meeting at 30 degrees. The sidewalks inside the wedge
	// cross well before the corner; both must come out trimmed, simple,
	// and with positive length.
	far := orb.Point{-10 * math.Cos(math.Pi / 6), 10 * math.Sin(math.Pi / 6)}
	sws := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{-10, 0}, {0, 0}}, SWLeft: 1, SWRight: 1},
		{ID: "b", Geometry: orb.LineString{{0, 0}, far}, SWLeft: 1, SWRight: 1},
	})

	if len(sws) == 0 {
		t.Fatal("no sidewalks emitted")
	}
	for _, s := range sws {
		if l := length(s.Geometry); l <= 0 {
			t.Errorf("street %q forward=%v: non-positive length %v", s.StreetID, s.Forward, l)
		}
	}

	// Outputs are deterministic across runs.
	again := run(t, []streets.Street{
		{ID: "a", Geometry: orb.LineString{{-10, 0}, {0, 0}}, SWLeft: 1, SWRight: 1},
		{ID: "b", Geometry: orb.LineString{{0, 0}, far}, SWLeft: 1, SWRight: 1},
	})
	if len(again) != len(sws) {
		t.Fatalf("rerun emitted %d sidewalks, first run %d", len(again), len(sws))
	}
	sort.Slice(sws, func(i, j int) bool { return key(sws[i]) < key(sws[j]) })
	sort.Slice(again, func(i, j int) bool { return key(again[i]) < key(again[j]) })
	for i := range sws {
		if !lineClose(sws[i].Geometry, again[i].Geometry) {
			t.Errorf("rerun geometry %d differs", i)
		}
	}
}

func key(s streets.Sidewalk) string {
	if s.Forward {
		return s.StreetID + "+"
	}
	return s.StreetID + "-"
}

func length(ls orb.LineString) float64 {
	total := 0.0
	for i := 0; i < len(ls)-1; i++ {
		total += math.Hypot(ls[i+1][0]-ls[i][0], ls[i+1][1]-ls[i][1])
	}
	return total
}
