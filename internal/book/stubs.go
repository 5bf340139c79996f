package book

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	berrors "git.home.luguber.info/inful/bookgen/internal/book/errors"
	"git.home.luguber.info/inful/bookgen/internal/features"
)

//go:embed templates/*.md
var templateFS embed.FS

var (
	stubIssueTpl   = template.Must(template.ParseFS(templateFS, "templates/stub-issue.md"))
	stubNoIssueTpl = template.Must(template.ParseFS(templateFS, "templates/stub-no-issue.md"))
)

// StubRenderer writes stub section pages for undocumented features. The two
// templates are fixed text with placeholder substitution; which one applies
// is decided by the caller-visible tracking-issue classification, not inside
// the templates.
type StubRenderer struct {
	issueURLFormat string
}

// NewStubRenderer creates a renderer. issueURLFormat is an fmt pattern
// turning a tracking-issue number into a URL.
func NewStubRenderer(issueURLFormat string) *StubRenderer {
	return &StubRenderer{issueURLFormat: issueURLFormat}
}

type stubContext struct {
	Name     string
	Issue    int
	IssueURL string
}

// WriteStub renders the appropriate stub for f and writes it to path,
// silently replacing any existing file.
func (r *StubRenderer) WriteStub(path string, f features.Feature) error {
	tpl := stubNoIssueTpl
	ctx := stubContext{Name: f.Name}
	if f.HasTrackingIssue() {
		tpl = stubIssueTpl
		ctx.Issue = f.TrackingIssue
		ctx.IssueURL = fmt.Sprintf(r.issueURLFormat, f.TrackingIssue)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", berrors.ErrStubWriteFailed, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", berrors.ErrStubWriteFailed, path, err)
	}
	return nil
}
