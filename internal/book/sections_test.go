package book

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileNameRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
	}{
		{"my_feature", "my-feature.md"},
		{"foo_bar", "foo-bar.md"},
		{"asm", "asm.md"},
		{"abi_ptx", "abi-ptx.md"},
		{"wrapping_next_power_of_two", "wrapping-next-power-of-two.md"},
	}
	for _, c := range cases {
		if got := FileNameForFeature(c.name); got != c.fileName {
			t.Errorf("FileNameForFeature(%q) = %q, want %q", c.name, got, c.fileName)
		}
		if got := FeatureNameForFile(c.fileName); got != c.name {
			t.Errorf("FeatureNameForFile(%q) = %q, want %q", c.fileName, got, c.name)
		}
	}
}

func TestCollectSectionNames(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []string{"foo-bar.md", "asm.md", "linker-flavor.md"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("# page"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Subdirectories are not sections.
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "ignored.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := CollectSectionNames(dir)
	if err != nil {
		t.Fatalf("CollectSectionNames failed: %v", err)
	}

	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d: %v", len(names), names)
	}
	for _, want := range []string{"foo_bar", "asm", "linker_flavor"} {
		if !names.Has(want) {
			t.Errorf("missing %q in %v", want, names)
		}
	}
	if names.Has("nested") || names.Has("ignored") {
		t.Errorf("nested entries must be ignored: %v", names)
	}
}

func TestCollectSectionNamesEmptyAndMissing(t *testing.T) {
	names, err := CollectSectionNames(t.TempDir())
	if err != nil {
		t.Fatalf("empty dir scan failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty set, got %v", names)
	}

	names, err = CollectSectionNames(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing dir scan failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty set for missing dir, got %v", names)
	}
}
