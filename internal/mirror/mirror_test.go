package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyTreePreservesStructureAndBytes(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	files := map[string]string{
		"SUMMARY.md":                      "summary",
		"the-unstable-book.md":            "# The book\n",
		"language-features/asm.md":        "hand-written asm docs\n",
		"compiler-flags/linker-flavor.md": "flag docs",
		"deep/nested/dir/page.md":         "nested",
	}
	for path, content := range files {
		full := filepath.Join(src, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CopyTree(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	for path, content := range files {
		got, err := os.ReadFile(filepath.Join(dst, path))
		if err != nil {
			t.Fatalf("missing copied file %s: %v", path, err)
		}
		if string(got) != content {
			t.Errorf("content mismatch for %s: %q", path, got)
		}
	}
}

func TestCopyTreeOverwritesExisting(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "page.md"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "page.md"), []byte("old stub"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyTree(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyTree failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "page.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("hand-written content must replace the generated one, got %q", got)
	}
}

func TestCopyTreeCancelled(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "page.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := CopyTree(ctx, src, t.TempDir()); err == nil {
		t.Fatal("expected context error")
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing source directory")
	}
}
