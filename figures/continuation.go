package figures

import "github.com/nayanlc19/journal-club-standalone/model"

// MergeContinuations folds "Table 3 (continued)" records back into the
// record that introduced "Table 3". Records must be in document order. The
// continuation's caption text is appended to the base record and the
// continuation record is dropped; its bounding box is not merged because it
// lives on a different page. A continuation with no earlier base record is
// kept as a record of its own.
func MergeContinuations(records []model.Figure) []model.Figure {
	out := make([]model.Figure, 0, len(records))
	byName := make(map[string]int) // name -> index in out of the base record

	for _, rec := range records {
		base, seen := byName[rec.Name]
		if seen && IsContinuation(rec.Caption) {
			if rec.Caption != "" {
				if out[base].Caption != "" {
					out[base].Caption += " "
				}
				out[base].Caption += rec.Caption
			}
			continue
		}

		out = append(out, rec)
		if rec.Name != "" {
			if _, exists := byName[rec.Name]; !exists {
				byName[rec.Name] = len(out) - 1
			}
		}
	}

	return out
}
