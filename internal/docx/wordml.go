package docx

import "encoding/xml"

// WordprocessingML element types. encoding/xml writes prefixed local names
// verbatim, which is how the w: and r: prefixes end up in the output.

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wP    `xml:"w:p"`
	SectPr     wSectPr `xml:"w:sectPr"`
}

type wP struct {
	PPr  *wPPr `xml:"w:pPr,omitempty"`
	Runs []wR  `xml:"w:r"`
}

// wPPr fields follow the CT_PPr sequence order
type wPPr struct {
	PStyle  *wVal     `xml:"w:pStyle,omitempty"`
	NumPr   *wNumPr   `xml:"w:numPr,omitempty"`
	PBdr    *wPBdr    `xml:"w:pBdr,omitempty"`
	Shd     *wShd     `xml:"w:shd,omitempty"`
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
	Ind     *wInd     `xml:"w:ind,omitempty"`
	Jc      *wVal     `xml:"w:jc,omitempty"`
}

type wR struct {
	RPr   *wRPr `xml:"w:rPr,omitempty"`
	Parts []wRunPart
}

// wRunPart is either a w:t or a w:br, chosen by XMLName
type wRunPart struct {
	XMLName xml.Name
	Space   string `xml:"xml:space,attr,omitempty"`
	Text    string `xml:",chardata"`
}

// wRPr fields follow the CT_RPr sequence order
type wRPr struct {
	RFonts *wRFonts `xml:"w:rFonts,omitempty"`
	B      *wOn     `xml:"w:b,omitempty"`
	I      *wOn     `xml:"w:i,omitempty"`
	Color  *wVal    `xml:"w:color,omitempty"`
	Sz     *wVal    `xml:"w:sz,omitempty"`
	SzCs   *wVal    `xml:"w:szCs,omitempty"`
}

type wOn struct{}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wRFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type wNumPr struct {
	Ilvl  wVal `xml:"w:ilvl"`
	NumID wVal `xml:"w:numId"`
}

type wPBdr struct {
	Bottom wBorder `xml:"w:bottom"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type wShd struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type wSpacing struct {
	Before int `xml:"w:before,attr,omitempty"`
	After  int `xml:"w:after,attr,omitempty"`
}

type wInd struct {
	Left int `xml:"w:left,attr"`
}

type wSectPr struct {
	PgSz  wPgSz  `xml:"w:pgSz"`
	PgMar wPgMar `xml:"w:pgMar"`
}

// A4 in twips
type wPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}
