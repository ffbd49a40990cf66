package docx

import (
	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/style"
)

// Placeholder builds the stand-in document emitted when a CV cannot be
// converted and the caller opted into placeholder output.
func Placeholder(name, reason string) *docmodel.Document {
	if name == "" {
		name = "CV"
	}
	b := docmodel.NewBuilder(name, "Calibri", 22)
	b.Section("placeholder").
		Add(docmodel.Paragraph{
			Heading: 1,
			Runs:    []docmodel.Run{{Text: name, Bold: true}},
		}).
		Add(docmodel.Paragraph{
			Runs:       []docmodel.Run{{Text: "This document could not be generated in Word format.", Italic: true}},
			SpaceAfter: 200,
		})
	if reason != "" {
		b.Add(docmodel.Paragraph{
			Runs: []docmodel.Run{{Text: "Reason: " + reason, Size: 18, Color: style.MustColor("#6b7280")}},
		})
	}
	b.Add(docmodel.Paragraph{
		Runs: []docmodel.Run{{Text: "Please download the PDF or HTML version instead."}},
	})
	return b.Document()
}
