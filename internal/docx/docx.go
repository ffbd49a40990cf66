// Package docx serializes a docmodel.Document into an Office Open XML
// word-processing package.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-generator/internal/docmodel"
)

// zipTime is stamped on every entry so identical documents produce
// identical bytes
var zipTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// bulletNumID is the w:num defined in numbering.xml for bulleted paragraphs
const bulletNumID = "1"

// SerializeError reports which package part failed to serialize
type SerializeError struct {
	Part  string
	Cause error
}

func (e *SerializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx serialize error: %s: %v", e.Part, e.Cause)
	}
	return fmt.Sprintf("docx serialize error: %s", e.Part)
}

func (e *SerializeError) Unwrap() error {
	return e.Cause
}

type part struct {
	name string
	data []byte
}

// Serialize writes doc as a .docx package. Output is deterministic for a
// given document.
func Serialize(doc *docmodel.Document) ([]byte, error) {
	if doc == nil {
		return nil, &SerializeError{Part: "word/document.xml", Cause: fmt.Errorf("nil document")}
	}

	body, err := documentXML(doc)
	if err != nil {
		return nil, &SerializeError{Part: "word/document.xml", Cause: err}
	}

	parts := []part{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", corePropsXML(doc.Title)},
		{"word/document.xml", body},
		{"word/styles.xml", stylesXML(doc.DefaultFont, doc.DefaultSize)},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: zipTime})
		if err != nil {
			return nil, &SerializeError{Part: p.name, Cause: err}
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, &SerializeError{Part: p.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &SerializeError{Part: "zip", Cause: err}
	}
	return buf.Bytes(), nil
}

func documentXML(doc *docmodel.Document) ([]byte, error) {
	d := wDocument{
		W: nsW,
		R: nsR,
		Body: wBody{
			Paragraphs: make([]wP, 0, len(doc.Paragraphs)),
			SectPr: wSectPr{
				PgSz:  wPgSz{W: 11906, H: 16838},
				PgMar: wPgMar{Top: 1134, Right: 1134, Bottom: 1134, Left: 1134, Header: 708, Footer: 708},
			},
		},
	}
	for _, p := range doc.Paragraphs {
		d.Body.Paragraphs = append(d.Body.Paragraphs, paragraph(p))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func paragraph(p docmodel.Paragraph) wP {
	var ppr wPPr
	set := false
	if p.Heading >= 1 && p.Heading <= 3 {
		ppr.PStyle = &wVal{Val: "Heading" + strconv.Itoa(p.Heading)}
		set = true
	}
	if p.Bullet {
		ppr.NumPr = &wNumPr{Ilvl: wVal{Val: "0"}, NumID: wVal{Val: bulletNumID}}
		set = true
	}
	if !p.BorderBottom.IsBlank() {
		ppr.PBdr = &wPBdr{Bottom: wBorder{Val: "single", Sz: 6, Space: 1, Color: p.BorderBottom.DOCX()}}
		set = true
	}
	if !p.Shading.IsBlank() {
		ppr.Shd = &wShd{Val: "clear", Color: "auto", Fill: p.Shading.DOCX()}
		set = true
	}
	if p.SpaceBefore > 0 || p.SpaceAfter > 0 {
		ppr.Spacing = &wSpacing{Before: p.SpaceBefore, After: p.SpaceAfter}
		set = true
	}
	if p.Indent > 0 {
		ppr.Ind = &wInd{Left: p.Indent}
		set = true
	}
	switch p.Align {
	case docmodel.AlignCenter:
		ppr.Jc = &wVal{Val: "center"}
		set = true
	case docmodel.AlignRight:
		ppr.Jc = &wVal{Val: "right"}
		set = true
	}

	out := wP{Runs: make([]wR, 0, len(p.Runs))}
	if set {
		out.PPr = &ppr
	}
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		out.Runs = append(out.Runs, run(r))
	}
	return out
}

func run(r docmodel.Run) wR {
	var rpr wRPr
	set := false
	if r.Font != "" {
		rpr.RFonts = &wRFonts{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
		set = true
	}
	if r.Bold {
		rpr.B = &wOn{}
		set = true
	}
	if r.Italic {
		rpr.I = &wOn{}
		set = true
	}
	if !r.Color.IsBlank() {
		rpr.Color = &wVal{Val: r.Color.DOCX()}
		set = true
	}
	if r.Size > 0 {
		sz := strconv.Itoa(r.Size)
		rpr.Sz = &wVal{Val: sz}
		rpr.SzCs = &wVal{Val: sz}
		set = true
	}

	out := wR{}
	if set {
		out.RPr = &rpr
	}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			out.Parts = append(out.Parts, wRunPart{XMLName: xml.Name{Local: "w:br"}})
		}
		if line == "" {
			continue
		}
		out.Parts = append(out.Parts, wRunPart{XMLName: xml.Name{Local: "w:t"}, Space: "preserve", Text: line})
	}
	return out
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func corePropsXML(title string) []byte {
	return []byte(xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:title>` + escape(title) + `</dc:title>` +
		`<dc:creator>cv-generator</dc:creator>` +
		`</cp:coreProperties>`)
}

func stylesXML(font string, size int) []byte {
	if font == "" {
		font = "Calibri"
	}
	if size <= 0 {
		size = 21
	}
	f := escape(font)
	heading := func(level, scale int) string {
		return fmt.Sprintf(`<w:style w:type="paragraph" w:styleId="Heading%[1]d">`+
			`<w:name w:val="heading %[1]d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/>`+
			`<w:uiPriority w:val="9"/><w:qFormat/>`+
			`<w:pPr><w:keepNext/><w:outlineLvl w:val="%[2]d"/></w:pPr>`+
			`<w:rPr><w:b/><w:sz w:val="%[3]d"/><w:szCs w:val="%[3]d"/></w:rPr>`+
			`</w:style>`, level, level-1, size*scale/100)
	}

	return []byte(xml.Header +
		`<w:styles xmlns:w="` + nsW + `">` +
		`<w:docDefaults>` +
		`<w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="` + f + `" w:hAnsi="` + f + `" w:cs="` + f + `"/>` +
		fmt.Sprintf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, size, size) +
		`</w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="60" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
		`</w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
		heading(1, 220) +
		heading(2, 130) +
		heading(3, 110) +
		`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/>` +
		`<w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="360"/></w:pPr></w:style>` +
		`</w:styles>`)
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

const numberingXML = xml.Header +
	`<w:numbering xmlns:w="` + nsW + `">` +
	`<w:abstractNum w:abstractNumId="0">` +
	`<w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="240"/></w:pPr></w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="` + bulletNumID + `"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`
