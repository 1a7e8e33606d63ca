// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgraph/internal/graph"
)

// ErrEmptySource is returned when an article source holds no articles.
var ErrEmptySource = errors.New("article source is empty")

// Article is one entry of an articles JSON source. The source is an
// object keyed by DOI.
type Article struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	Abstract     string     `json:"abstract,omitempty"`
	Year         *flexInt   `json:"year,omitempty"`
	NumCitations *flexInt   `json:"num_citations,omitempty"`
	Authors      string     `json:"authors"`
	Category     string     `json:"category"`
	Subjects     []string   `json:"subjects,omitempty"`
	TopTerms     []string   `json:"top_terms,omitempty"`
	References   []string   `json:"references,omitempty"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON integer or a string holding one.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*f = flexInt(n)
	return nil
}

// ParseArticles decodes an articles JSON source keyed by DOI.
func ParseArticles(data []byte) (map[string]Article, error) {
	var articles map[string]Article
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&articles); err != nil {
		return nil, fmt.Errorf("parsing articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, ErrEmptySource
	}
	return articles, nil
}

// IngestSummary holds counts from an ingestion run.
type IngestSummary struct {
	// Articles is the number of articles converted to facts.
	Articles int
	// Added is the number of new facts.
	Added int
	// Existing is the number of facts that were already in the graph.
	Existing int
	// Failed is the number of articles skipped for missing id or title.
	Failed int
	// Skipped is set when the source was unchanged since the last run.
	Skipped bool
}

// Total returns the number of articles processed.
func (s IngestSummary) Total() int {
	return s.Articles + s.Failed
}

// Minter builds catalog identifiers under a base namespace.
type Minter struct {
	Base string
}

// Article returns the identifier of an article by its source id.
func (m Minter) Article(id string) graph.IRI {
	return graph.IRI(m.Base + id)
}

// Named returns the identifier of an author or concept: lowercased, with
// hyphens and spaces replaced by underscores.
func (m Minter) Named(name string) graph.IRI {
	local := strings.NewReplacer("-", "_", " ", "_").Replace(name)
	return graph.IRI(m.Base + strings.ToLower(local))
}

// Reference returns the identifier of a cited work by its DOI.
func (m Minter) Reference(doi string) graph.IRI {
	return graph.IRI(m.Base + strings.ReplaceAll(doi, "/", "_"))
}

var authorSeparator = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

// SplitAuthors splits an author list such as "A. Smith, B. Jones and C. Wu".
func SplitAuthors(s string) []string {
	var out []string
	for _, name := range authorSeparator.Split(s, -1) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// AddArticles converts articles into facts in g, adding each fact only
// when it is not already present. Articles are processed in DOI order.
// Progress lines are written to w.
func AddArticles(g *graph.Memory, articles map[string]Article, mint Minter, w io.Writer) IngestSummary {
	var summary IngestSummary

	dois := make([]string, 0, len(articles))
	for doi := range articles {
		dois = append(dois, doi)
	}
	sort.Strings(dois)

	for _, doi := range dois {
		a := articles[doi]
		if a.ID == "" || strings.TrimSpace(a.Title) == "" {
			fmt.Fprintf(w, "failed  %s: missing id or title\n", doi)
			summary.Failed++
			continue
		}

		added, existing := addArticle(g, doi, a, mint)
		summary.Articles++
		summary.Added += added
		summary.Existing += existing
		fmt.Fprintf(w, "added   %s (%d facts)\n", doi, added)
	}
	return summary
}

func addArticle(g *graph.Memory, doi string, a Article, mint Minter) (added, existing int) {
	add := func(s, p graph.IRI, o graph.Term) {
		if g.Add(graph.Triple{Subject: s, Predicate: p, Object: o}) {
			added++
		} else {
			existing++
		}
	}

	doc := mint.Article(string(a.ID))
	add(doc, graph.RDFType, graph.ClassDocument)
	add(doc, graph.HasTitle, graph.NewString(a.Title))
	if a.Abstract != "" {
		add(doc, graph.HasAbstract, graph.NewString(a.Abstract))
	}
	if a.Year != nil {
		add(doc, graph.HasYear, graph.NewInteger(int(*a.Year)))
	}
	if a.NumCitations != nil {
		add(doc, graph.HasCitations, graph.NewInteger(int(*a.NumCitations)))
	}

	for _, name := range SplitAuthors(a.Authors) {
		author := mint.Named(name)
		add(author, graph.RDFType, graph.ClassAuthor)
		add(author, graph.RDFSLabel, graph.NewString(name))
		add(doc, graph.HasAuthor, author)
	}

	concepts := append([]string{a.Category}, a.Subjects...)
	concepts = append(concepts, a.TopTerms...)
	for _, name := range concepts {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		concept := mint.Named(name)
		add(concept, graph.RDFType, graph.ClassConcept)
		add(concept, graph.RDFSLabel, graph.NewString(name))
		add(doc, graph.HasConcept, concept)
	}

	for _, ref := range a.References {
		if ref = strings.TrimSpace(ref); ref == "" {
			continue
		}
		cited := mint.Reference(ref)
		add(cited, graph.RDFType, graph.ClassDocument)
		add(doc, graph.HasReference, cited)
	}

	add(doc, graph.HasDOI, graph.NewString(doi))
	return added, existing
}

// IngestOptions controls Store.Ingest.
type IngestOptions struct {
	// Source names the input for change tracking (a path or URL).
	Source string
	// Minter mints identifiers for new entities.
	Minter Minter
	// Force re-ingests a source whose checksum is unchanged.
	Force bool
}

// Ingest merges an articles JSON source into the snapshot: it loads the
// current graph, adds the source's facts, saves, and records the source
// checksum. An unchanged source is skipped unless opts.Force is set. The
// merged graph is returned so callers can export it further.
func (s *Store) Ingest(ctx context.Context, data []byte, opts IngestOptions, w io.Writer) (*graph.Memory, IngestSummary, error) {
	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	prev, found, err := s.sourceChecksum(ctx, opts.Source)
	if err != nil {
		return nil, IngestSummary{}, err
	}

	g, err := s.LoadGraph(ctx)
	if err != nil {
		return nil, IngestSummary{}, err
	}

	if found && prev == checksum && !opts.Force {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", opts.Source)
		return g, IngestSummary{Skipped: true}, nil
	}

	articles, err := ParseArticles(data)
	if err != nil {
		return nil, IngestSummary{}, err
	}

	summary := AddArticles(g, articles, opts.Minter, w)

	if _, err := s.SaveGraph(ctx, g); err != nil {
		return nil, summary, err
	}
	if err := s.recordSource(ctx, opts.Source, checksum); err != nil {
		return nil, summary, err
	}

	fmt.Fprintf(w, "\narticles: %d, facts added: %d, existing: %d, failed: %d\n",
		summary.Articles, summary.Added, summary.Existing, summary.Failed)
	return g, summary, nil
}
