package analysis

import "github.com/fortmig/fortscan/pkg/models"

// Classify assigns the final classification to every file after propagation
// reaches fixpoint. Seeds are Owned regardless of what propagation recorded:
// direct placement is never downgraded. Non-seeds with a non-empty origin set
// are SupportDependency; everything else is OutOfScope.
func (s *Snapshot) Classify() models.ClassificationTotals {
	var totals models.ClassificationTotals
	totals.Total = len(s.Paths)

	for _, path := range s.Paths {
		rec := s.Files[path]
		switch {
		case rec.Seed:
			rec.Classification = models.ClassificationOwned
			totals.Owned++
		case len(rec.Origins) > 0:
			rec.Classification = models.ClassificationSupportDependency
			totals.Support++
		default:
			rec.Classification = models.ClassificationOutOfScope
			totals.OutOfScope++
		}
	}
	return totals
}

// PrimaryLabel computes the display-ready origin summary for a file: "none"
// for an empty origin set, "multiple" for more than one label, otherwise the
// single module's display name.
func PrimaryLabel(origins map[string]bool, displayName func(string) string) string {
	switch len(origins) {
	case 0:
		return "none"
	case 1:
		for m := range origins {
			return displayName(m)
		}
	}
	return "multiple"
}
