package provider

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/htmltable"
	"github.com/corpsgeek/MetaQuantNig/pkg/metaquant/store"
)

// Renderer produces the fully rendered HTML of a page. The production
// implementation drives a headless browser (internal/browser); tests inject
// static HTML.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

// DisclosureProvider scrapes the NGX corporate disclosures page.
type DisclosureProvider struct {
	BaseURL  string
	Renderer Renderer
}

// FetchPage renders the disclosures page and extracts filing rows from it.
// A page with no recognizable disclosures table is a legitimate zero-result
// outcome, not an error; the reason is logged for diagnosis.
func (p *DisclosureProvider) FetchPage(ctx context.Context) ([]store.Filing, error) {
	rendered, err := p.Renderer.Render(ctx, p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("render disclosures page: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("parse disclosures page: %w", err)
	}

	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("bad disclosures base url %q: %w", p.BaseURL, err)
	}

	ext := htmltable.ExtractFilings(doc, base)
	if ext.Reason != htmltable.OK {
		log.Printf("disclosures page yielded no rows: %s", ext.Reason)
		return nil, nil
	}
	log.Printf("parsed %d disclosure rows from rendered HTML", len(ext.Filings))
	return ext.Filings, nil
}
