// Package docmodel defines the backend-agnostic document tree that renderers
// build and the DOCX backend serializes.
package docmodel

import (
	"strings"

	"github.com/jonathan/cv-generator/internal/style"
)

// Align is a paragraph alignment
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Document is an ordered sequence of paragraphs with document-wide defaults
type Document struct {
	Title       string
	DefaultFont string
	DefaultSize int // half-points
	Paragraphs  []Paragraph
}

// Paragraph is a block of runs. Section names the CV section the paragraph
// belongs to so structure can be compared across backends.
type Paragraph struct {
	Section      string
	Runs         []Run
	Heading      int // 0 for body text, 1-3 for headings
	Align        Align
	SpaceBefore  int // twips
	SpaceAfter   int // twips
	Indent       int // twips
	Bullet       bool
	Shading      style.Color
	BorderBottom style.Color
}

// Run is a span of uniformly styled text
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   int // half-points, 0 inherits the document default
	Color  style.Color
	Font   string
}

// Text returns the concatenated text of the paragraph's runs
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Sections returns the distinct section ids in order of first appearance
func (d *Document) Sections() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range d.Paragraphs {
		if p.Section == "" || seen[p.Section] {
			continue
		}
		seen[p.Section] = true
		out = append(out, p.Section)
	}
	return out
}

// Text returns the plain text of the document, one paragraph per line
func (d *Document) Text() string {
	lines := make([]string, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// SectionText returns the plain text of one section
func (d *Document) SectionText(section string) string {
	var lines []string
	for _, p := range d.Paragraphs {
		if p.Section == section {
			lines = append(lines, p.Text())
		}
	}
	return strings.Join(lines, "\n")
}

// Builder appends paragraphs to a document under a current section
type Builder struct {
	doc     *Document
	section string
}

// NewBuilder starts a document
func NewBuilder(title, font string, size int) *Builder {
	return &Builder{doc: &Document{Title: title, DefaultFont: font, DefaultSize: size}}
}

// Section switches the section tag applied to subsequent paragraphs
func (b *Builder) Section(id string) *Builder {
	b.section = id
	return b
}

// Add appends a paragraph tagged with the current section
func (b *Builder) Add(p Paragraph) *Builder {
	p.Section = b.section
	b.doc.Paragraphs = append(b.doc.Paragraphs, p)
	return b
}

// Document returns the built document
func (b *Builder) Document() *Document {
	return b.doc
}
