package figures

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// Caption is one recognized caption line (possibly extended over several
// text lines). Name is the canonical "<Kind> <number>" form used to pair
// continuations across pages.
type Caption struct {
	Kind model.ElementKind
	Name string
	Text string
	BBox model.BBox

	claimed bool
}

// Claimed reports whether an element has already been matched to this caption
func (c *Caption) Claimed() bool {
	return c.claimed
}

// Claim marks the caption as owned by an element
func (c *Caption) Claim() {
	c.claimed = true
}

// captionPattern recognizes figure and table caption openers: an optional
// "Supplementary"/"Appendix" qualifier, the kind keyword or its common
// abbreviation, and an arabic or Roman numeral.
var captionPattern = regexp.MustCompile(
	`(?i)^\s*((?:supplementary|appendix)\s+)?(figure|fig\.?|table|tbl\.?)\s+(\d+|[ivxlc]+)\b`)

// continuationPattern matches the markers journals use when a table or
// figure spills onto the next page.
var continuationPattern = regexp.MustCompile(
	`(?i)\b(continued|cont\.|cont'd|continuation)\b|\(cont\.?\)`)

// MatchCaption tests whether a text line opens a caption. On a match it
// returns the element kind and the canonical name, e.g. "Figure 3" or
// "Supplementary Table II".
func MatchCaption(line string) (model.ElementKind, string, bool) {
	m := captionPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}

	kind := model.KindFigure
	keyword := "Figure"
	switch strings.ToLower(strings.TrimSuffix(m[2], ".")) {
	case "table", "tbl":
		kind = model.KindTable
		keyword = "Table"
	}

	number := m[3]
	if isRoman(number) {
		number = strings.ToUpper(number)
	}

	name := keyword + " " + number
	if qualifier := strings.TrimSpace(m[1]); qualifier != "" {
		name = titleCase(qualifier) + " " + name
	}
	return kind, name, true
}

// IsContinuation reports whether a caption carries a continuation marker
func IsContinuation(text string) bool {
	return continuationPattern.MatchString(text)
}

func isRoman(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// ligatures maps the typographic ligatures PDF fonts commonly emit back to
// their ASCII sequences so caption text searches stay reliable.
var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"–", "-",
	"—", "-",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizeText folds ligatures and exotic spaces and applies NFC so
// caption text is stable regardless of how the producing tool encoded it.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = ligatures.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// CaptionSet holds the captions found on one page, in scan order
type CaptionSet struct {
	captions []*Caption
}

// ScanCaptions walks the page's text lines and collects captions. A caption
// starts at a line matching the caption pattern and extends over following
// lines that sit within lineGap vertically and leftSlack horizontally,
// stopping early if the next line opens a caption of its own.
func ScanCaptions(page *model.PageContent, cfg Config) *CaptionSet {
	lines := page.Lines()
	set := &CaptionSet{}

	for i := 0; i < len(lines); i++ {
		text := NormalizeText(lines[i].Text)
		kind, name, ok := MatchCaption(text)
		if !ok {
			continue
		}

		capt := &Caption{
			Kind: kind,
			Name: name,
			Text: text,
			BBox: lines[i].BBox,
		}

		prev := lines[i]
		for i+1 < len(lines) {
			next := lines[i+1]
			nextText := NormalizeText(next.Text)
			if _, _, opens := MatchCaption(nextText); opens {
				break
			}
			gap := next.BBox.Y1 - prev.BBox.Y2
			leftOffset := next.BBox.X1 - capt.BBox.X1
			if gap < 0 || gap > cfg.CaptionLineGap ||
				leftOffset < -cfg.CaptionLeftSlack || leftOffset > cfg.CaptionLeftSlack {
				break
			}
			capt.Text += " " + nextText
			capt.BBox = capt.BBox.Union(next.BBox)
			prev = next
			i++
		}

		set.captions = append(set.captions, capt)
	}

	return set
}

// All returns the captions in scan order
func (s *CaptionSet) All() []*Caption {
	return s.captions
}

// Unclaimed returns the captions of the given kind not yet owned by an element
func (s *CaptionSet) Unclaimed(kind model.ElementKind) []*Caption {
	var out []*Caption
	for _, c := range s.captions {
		if !c.claimed && c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of captions in the set
func (s *CaptionSet) Len() int {
	return len(s.captions)
}

// String is a debugging aid
func (c *Caption) String() string {
	return fmt.Sprintf("%s %q at (%.0f,%.0f)", c.Name, c.Text, c.BBox.X1, c.BBox.Y1)
}
