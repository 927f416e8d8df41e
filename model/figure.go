package model

// ElementKind classifies an extracted element
type ElementKind string

const (
	KindFigure ElementKind = "figure"
	KindTable  ElementKind = "table"
)

// String returns the JSON wire value
func (k ElementKind) String() string {
	return string(k)
}

// Figure describes one extracted figure or table. PageNumber is 1-based.
// Image, when present, is a base64 PNG data URI. Source identifies the
// detector that produced the record.
type Figure struct {
	Kind       ElementKind `json:"type"`
	PageNumber int         `json:"pageNumber"`
	Name       string      `json:"name"`
	Caption    string      `json:"caption"`
	BBox       BBox        `json:"bbox"`
	Image      string      `json:"image,omitempty"`
	Source     string      `json:"source"`
}

// Metadata holds document-level information read from the PDF info
// dictionary. Fields the document does not declare are left at their zero
// value and normalized by the reader.
type Metadata struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Subject  string `json:"subject,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Pages    int    `json:"pages"`
}
