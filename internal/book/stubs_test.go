package book

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/bookgen/internal/features"
)

const testIssueURLFormat = "https://github.com/rust-lang/rust/issues/%d"

func TestWriteStubWithIssue(t *testing.T) {
	renderer := NewStubRenderer(testIssueURLFormat)
	path := filepath.Join(t.TempDir(), "foo-bar.md")

	f := features.Feature{Name: "foo_bar", Stability: features.Unstable, TrackingIssue: 1234}
	if err := renderer.WriteStub(path, f); err != nil {
		t.Fatalf("WriteStub failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.Contains(content, "# `foo_bar`") {
		t.Errorf("header must name the feature:\n%s", content)
	}
	if !strings.Contains(content, "[#1234]") {
		t.Errorf("content must reference the tracking issue:\n%s", content)
	}
	if !strings.Contains(content, "https://github.com/rust-lang/rust/issues/1234") {
		t.Errorf("content must link the tracking issue:\n%s", content)
	}
	if strings.Contains(content, "no tracking issue") {
		t.Errorf("issue stub must not contain the no-issue text:\n%s", content)
	}
}

func TestWriteStubWithoutIssue(t *testing.T) {
	renderer := NewStubRenderer(testIssueURLFormat)

	for _, issue := range []int{0, -7} {
		path := filepath.Join(t.TempDir(), "link-args.md")
		f := features.Feature{Name: "link_args", Stability: features.Unstable, TrackingIssue: issue}
		if err := renderer.WriteStub(path, f); err != nil {
			t.Fatalf("WriteStub failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)

		if !strings.Contains(content, "# `link_args`") {
			t.Errorf("header must name the feature:\n%s", content)
		}
		if !strings.Contains(content, "no tracking issue") {
			t.Errorf("no-issue stub must carry the no-issue text:\n%s", content)
		}
		if strings.Contains(content, "issues/") {
			t.Errorf("no-issue stub must not link an issue:\n%s", content)
		}
	}
}

func TestWriteStubOverwrites(t *testing.T) {
	renderer := NewStubRenderer(testIssueURLFormat)
	path := filepath.Join(t.TempDir(), "asm.md")

	if err := os.WriteFile(path, []byte("stale content"), 0644); err != nil {
		t.Fatal(err)
	}
	f := features.Feature{Name: "asm", Stability: features.Unstable, TrackingIssue: 29722}
	if err := renderer.WriteStub(path, f); err != nil {
		t.Fatalf("WriteStub failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Errorf("existing file must be replaced, got:\n%s", data)
	}
}
