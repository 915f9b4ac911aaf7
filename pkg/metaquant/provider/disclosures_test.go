package provider

import (
	"context"
	"testing"
)

// staticRenderer serves canned HTML instead of driving a browser.
type staticRenderer struct {
	html string
	err  error
	urls []string
}

func (r *staticRenderer) Render(_ context.Context, pageURL string) (string, error) {
	r.urls = append(r.urls, pageURL)
	return r.html, r.err
}

func TestFetchPageExtractsFilings(t *testing.T) {
	renderer := &staticRenderer{html: `
<html><body>
<table>
  <tr><th>Company</th><th>Disclosures</th><th>Date Submitted</th></tr>
  <tr><td>MTN Nigeria</td><td><a href="filings/q1.pdf">Q1 Results</a></td><td>15-Mar-2024</td></tr>
</table>
</body></html>`}

	p := &DisclosureProvider{BaseURL: "https://ngxgroup.com/x/", Renderer: renderer}
	filings, err := p.FetchPage(context.Background())
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(filings) != 1 {
		t.Fatalf("got %d filings, want 1", len(filings))
	}
	f := filings[0]
	if f.SourceURL != "https://ngxgroup.com/x/filings/q1.pdf" {
		t.Errorf("SourceURL = %q", f.SourceURL)
	}
	if f.PDFURL != f.SourceURL {
		t.Errorf("PDFURL = %q, want direct pdf tag", f.PDFURL)
	}
	if len(renderer.urls) != 1 || renderer.urls[0] != p.BaseURL {
		t.Errorf("rendered urls = %v, want the configured base url once", renderer.urls)
	}
}

func TestFetchPageEmptyPageIsZeroResult(t *testing.T) {
	renderer := &staticRenderer{html: `<html><body><p>maintenance</p></body></html>`}

	p := &DisclosureProvider{BaseURL: "https://ngxgroup.com/x/", Renderer: renderer}
	filings, err := p.FetchPage(context.Background())
	if err != nil {
		t.Fatalf("an unmatchable page must not error, got %v", err)
	}
	if len(filings) != 0 {
		t.Fatalf("got %d filings, want 0", len(filings))
	}
}

func TestFetchPageRendererFailure(t *testing.T) {
	renderer := &staticRenderer{err: context.DeadlineExceeded}

	p := &DisclosureProvider{BaseURL: "https://ngxgroup.com/x/", Renderer: renderer}
	if _, err := p.FetchPage(context.Background()); err == nil {
		t.Fatal("renderer failure must propagate")
	}
}
