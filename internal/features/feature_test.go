package features

import "testing"

func TestHasTrackingIssue(t *testing.T) {
	cases := []struct {
		issue int
		want  bool
	}{
		{1234, true},
		{1, true},
		{0, false},
		{-5, false},
	}
	for _, c := range cases {
		f := Feature{Name: "x", Stability: Unstable, TrackingIssue: c.issue}
		if got := f.HasTrackingIssue(); got != c.want {
			t.Errorf("HasTrackingIssue with issue %d = %v, want %v", c.issue, got, c.want)
		}
	}
}

func TestUnstableNames(t *testing.T) {
	reg := Registry{
		"a": {Name: "a", Stability: Unstable},
		"b": {Name: "b", Stability: Stable},
		"c": {Name: "c", Stability: Removed},
		"d": {Name: "d", Stability: Unstable, TrackingIssue: 7},
	}

	names := reg.UnstableNames()
	if len(names) != 2 || !names.Has("a") || !names.Has("d") {
		t.Fatalf("unexpected unstable names: %v", names)
	}
}
