// Package registry assembles classified placeholder mappings into the
// deduplicated per-template registry.
//
// Deduplication is first-seen-wins and stable: the first classification
// encountered for a key is kept, later occurrences of the same key are
// dropped from the flat list. Section grouping keeps every occurrence: a
// key may appear in several sections, and repeatedly within one section's
// list, even though the flat list never repeats a key.
package registry

import "pagecraft-hq/callisto/pkg/placeholder"

// Build produces the TemplatePlaceholders registry from the ordered
// occurrence list and its parallel classification results. occurrences[i]
// must be the occurrence mappings[i] was classified from; the two slices
// are expected to have equal length, with any surplus ignored.
func Build(templateID string, occurrences []placeholder.Occurrence, mappings []placeholder.Mapping) *placeholder.TemplatePlaceholders {
	n := len(occurrences)
	if len(mappings) < n {
		n = len(mappings)
	}

	tp := &placeholder.TemplatePlaceholders{
		TemplateID:   templateID,
		Placeholders: make([]placeholder.Mapping, 0, n),
		Sections:     make(map[string]*placeholder.Section),
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		occ := occurrences[i]
		mapping := mappings[i]

		if !seen[mapping.Key] {
			seen[mapping.Key] = true
			tp.Placeholders = append(tp.Placeholders, mapping)
		}

		section, ok := tp.Sections[occ.SectionKey]
		if !ok {
			// Priority comes from the position that first produced
			// this section key.
			section = &placeholder.Section{Priority: occ.SiblingIndex}
			tp.Sections[occ.SectionKey] = section
		}
		section.Placeholders = append(section.Placeholders, mapping.Key)
	}

	return tp
}
