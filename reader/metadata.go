package reader

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// Metadata reads the document info dictionary. Absent entries default to
// "Unknown" so callers never branch on empty strings.
func (d *Document) Metadata() (model.Metadata, error) {
	meta := model.Metadata{
		Title:  "Unknown",
		Author: "Unknown",
		Pages:  d.PageCount(),
	}

	if d.ctx.Info == nil {
		return meta, nil
	}
	dict, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil || dict == nil {
		// A damaged info dict is not worth failing the document over
		return meta, nil
	}

	if v := infoString(dict.StringEntry("Title")); v != "" {
		meta.Title = v
	}
	if v := infoString(dict.StringEntry("Author")); v != "" {
		meta.Author = v
	}
	meta.Subject = infoString(dict.StringEntry("Subject"))
	meta.Keywords = infoString(dict.StringEntry("Keywords"))

	return meta, nil
}

// infoString normalizes an info dictionary value. Producers write these as
// either PDFDocEncoding or UTF-16BE with a BOM; the BOM form is decoded,
// the rest passed through.
func infoString(s *string) string {
	if s == nil {
		return ""
	}
	v := *s
	if strings.HasPrefix(v, "\xfe\xff") {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if decoded, err := dec.String(v); err == nil {
			v = decoded
		}
	}
	return strings.TrimSpace(v)
}
