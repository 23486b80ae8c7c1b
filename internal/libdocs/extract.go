// Package libdocs extracts observation and relation metadata from library
// documentation files and builds enhanced copies that carry the metadata as
// YAML frontmatter. Extraction is lexical: a fixed set of regex heuristics
// over the parsed structure. Matches are best-effort hints for downstream
// consumers, never semantic judgments, and a document matching nothing is a
// valid empty result.
package libdocs

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/archdoc/internal/markdown"
	"github.com/pdiddy/archdoc/internal/schema"
	"github.com/pdiddy/archdoc/pkg/types"
)

// Sentence-level patterns applied to prose lines and list items.
var (
	versionPattern    = regexp.MustCompile(`(?i)\b(?:version|since|v)\s*(\d+(?:\.\d+)+)`)
	dependencyPattern = regexp.MustCompile(`(?i)\b(?:requires?|depends\s+on|pip\s+install|go\s+get|npm\s+install|gem\s+install)\s+([A-Za-z][A-Za-z0-9_.\-/@+]*)`)
	practicePattern   = regexp.MustCompile(`(?i)\b(?:should|must|always|never|recommended|best\s+practice|prefer(?:red)?)\b`)
	warningPattern    = regexp.MustCompile(`(?i)\b(?:warning|caution|deprecated|unsafe|do\s+not|avoid|danger(?:ous)?)\b`)
)

// Heading patterns.
var (
	techniquePattern = regexp.MustCompile(`(?i)^(?:how\s+to|using|working\s+with|getting\s+started|configuring|customizing)\b`)
	examplePattern   = regexp.MustCompile(`(?i)\bexamples?\b`)
)

// seeAlsoPattern marks link text that signals a sibling document.
var seeAlsoPattern = regexp.MustCompile(`(?i)\b(?:see\s+also|related)\b`)

// mentionPattern matches inline code spans that look like identifiers of
// other entities (dotted, underscored, or hyphenated lowercase names).
var mentionPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[-_.][a-z0-9]+)+$`)

// sourceHosts are code-hosting domains; links there are source_code relations.
var sourceHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

// docHosts are documentation domains; links there are official_docs relations.
var docHosts = map[string]bool{
	"pkg.go.dev":  true,
	"godoc.org":   true,
	"hexdocs.pm":  true,
	"docs.rs":     true,
	"javadoc.io":  true,
	"readthedocs": true,
}

const titleLimit = 80

// Extract runs every pattern over a parsed documentation file and collects
// the resulting observations and relations for one documented entity.
// sourcePath, when non-empty, is recorded on the entity and attached to each
// observation as file evidence. Patterns are independent: one line can yield
// several observations, and no match anywhere yields an entity with empty
// lists and no error.
func Extract(st *markdown.Structure, library, entityID, sourcePath string) (*types.LibraryEntity, error) {
	if st == nil {
		return nil, fmt.Errorf("nil structure")
	}
	if library == "" {
		return nil, fmt.Errorf("library name is required")
	}
	if !schema.ValidID(entityID) {
		return nil, fmt.Errorf("entity id %q is not kebab-case", entityID)
	}

	x := &extraction{
		library:    library,
		entity:     entityID,
		sourcePath: sourcePath,
		seen:       map[string]bool{},
	}

	for _, h := range st.Headings {
		x.scanHeading(h)
	}
	for _, p := range st.Paragraphs {
		x.scanText(p.Text, p.Line)
	}
	for _, li := range st.ListItems {
		x.scanText(li.Text, li.Line)
	}
	for _, q := range st.Blockquotes {
		x.scanQuote(q)
	}
	for _, cb := range st.CodeBlocks {
		x.scanCodeBlock(cb)
	}
	for _, l := range st.Links {
		x.scanLink(l)
	}
	for _, cs := range st.CodeSpans {
		x.scanCodeSpan(cs)
	}

	name := entityID
	for _, h := range st.Headings {
		if h.Level == 1 {
			name = h.Text
			break
		}
	}

	return &types.LibraryEntity{
		ID:           entityID,
		Library:      library,
		Name:         name,
		SourceFile:   sourcePath,
		Observations: x.observations,
		Relations:    x.relations,
	}, nil
}

// extraction accumulates matches for one document.
type extraction struct {
	library    string
	entity     string
	sourcePath string
	seen       map[string]bool

	observations []types.Observation
	relations    []types.Relation
}

func (x *extraction) scanHeading(h markdown.Heading) {
	switch {
	case techniquePattern.MatchString(h.Text):
		x.observe("technique", types.SeverityInfo, h.Text, h.Text, h.Line)
	case examplePattern.MatchString(h.Text):
		x.observe("example", types.SeverityInfo, h.Text, h.Text, h.Line)
	}
}

func (x *extraction) scanText(text string, line int) {
	if m := versionPattern.FindStringSubmatch(text); m != nil {
		x.observe("version", types.SeverityInfo, "Version "+m[1]+" referenced", text, line)
	}
	if m := dependencyPattern.FindStringSubmatch(text); m != nil {
		x.observe("dependency", types.SeverityInfo, "Depends on "+m[1], text, line)
	}
	if warningPattern.MatchString(text) {
		x.observe("warning", types.SeverityWarning, truncate(text, titleLimit), text, line)
	}
	if practicePattern.MatchString(text) {
		x.observe("best_practice", types.SeverityInfo, truncate(text, titleLimit), text, line)
	}
}

// scanQuote treats blockquotes as callouts: warnings when they carry warning
// vocabulary, notes otherwise.
func (x *extraction) scanQuote(q markdown.Blockquote) {
	if q.Text == "" {
		return
	}
	if warningPattern.MatchString(q.Text) {
		x.observe("warning", types.SeverityWarning, truncate(q.Text, titleLimit), q.Text, q.Line)
		return
	}
	x.observe("note", types.SeverityInfo, truncate(q.Text, titleLimit), q.Text, q.Line)
}

func (x *extraction) scanCodeBlock(cb markdown.CodeBlock) {
	if strings.TrimSpace(cb.Content) == "" {
		return
	}
	title := "Code example"
	if cb.Language != "" {
		title = "Code example (" + cb.Language + ")"
	}
	first, _, _ := strings.Cut(cb.Content, "\n")
	x.observe("example", types.SeverityInfo, title, truncate(first, titleLimit), cb.Line)
}

func (x *extraction) scanLink(l markdown.Link) {
	rtype, target := classifyLink(l)
	if rtype == "" {
		return
	}
	desc := fmt.Sprintf("Links to %s", target)
	if l.Text != "" {
		desc = fmt.Sprintf("Links to %s (%q)", target, l.Text)
	}
	x.relate(rtype, target, desc)
}

func (x *extraction) scanCodeSpan(cs markdown.CodeSpan) {
	if !mentionPattern.MatchString(cs.Text) {
		return
	}
	target := slugify(cs.Text)
	if target == "" || target == x.entity {
		return
	}
	x.relate("mentions", target, fmt.Sprintf("Mentions %s in inline code", cs.Text))
}

func (x *extraction) observe(category string, severity types.Severity, title, description string, line int) {
	id := "obs-" + stableID(x.library, x.entity, category, title)
	if x.seen[id] {
		return
	}
	x.seen[id] = true

	obs := types.Observation{
		ID:          id,
		Category:    category,
		Severity:    severity,
		Title:       title,
		Description: description,
	}
	if x.sourcePath != "" {
		obs.Evidence = []types.Evidence{{
			Type:      types.EvidenceFile,
			Path:      x.sourcePath,
			StartLine: line,
			EndLine:   line,
		}}
	}
	x.observations = append(x.observations, obs)
}

func (x *extraction) relate(rtype, target, description string) {
	id := "rel-" + stableID(x.library, x.entity, rtype, target)
	if x.seen[id] {
		return
	}
	x.seen[id] = true

	x.relations = append(x.relations, types.Relation{
		ID:          id,
		Target:      target,
		Type:        rtype,
		Description: description,
	})
}

// classifyLink maps a link to a relation type and target. The empty type
// means the link carries no usable relation (empty or unparseable target).
func classifyLink(l markdown.Link) (rtype, target string) {
	u := strings.TrimSpace(l.URL)
	if u == "" {
		return "", ""
	}

	if strings.HasPrefix(u, "#") {
		return "references_section", slugify(strings.TrimPrefix(u, "#"))
	}

	if parsed, err := url.Parse(u); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		host := strings.TrimPrefix(parsed.Hostname(), "www.")
		switch {
		case sourceHosts[host]:
			return "source_code", u
		case isDocHost(host) || strings.HasPrefix(parsed.Path, "/docs"):
			return "official_docs", u
		default:
			return "external_reference", u
		}
	}

	// Relative targets: sibling markdown is related documentation; anything
	// else is a plain reference. "See also" link text marks it as related.
	if seeAlsoPattern.MatchString(l.Text) {
		return "related", u
	}
	lower := strings.ToLower(u)
	if strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") {
		return "related_docs", u
	}
	return "references", u
}

func isDocHost(host string) bool {
	if docHosts[host] {
		return true
	}
	for h := range docHosts {
		if strings.HasSuffix(host, "."+h) || strings.Contains(host, h+".") {
			return true
		}
	}
	return strings.HasPrefix(host, "docs.")
}

// stableID returns the first 8 hex characters of SHA-256 over the given
// parts, so re-extracting unchanged content yields identical identifiers.
func stableID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:8]
}

// DefaultEntityID derives an entity id from the library name and the source
// filename, for callers that do not pick their own.
func DefaultEntityID(library, srcPath string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	id := slugify(library + "-" + base)
	if id == "" || id[0] >= '0' && id[0] <= '9' {
		id = "lib-" + id
	}
	return strings.TrimSuffix(id, "-")
}

// slugify lowers a name into the kebab-case identifier form.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// truncate shortens s to at most n runes, backing up to a word boundary.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := string([]rune(s)[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
