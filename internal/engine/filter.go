package engine

import (
	"log"

	"ed-rscan/internal/edsm"
	"ed-rscan/internal/stars"
)

// FilterCandidates turns raw catalog documents into StarSystem records,
// keeping only systems that are plausibly incompletely surveyed: a document
// survives when either body count is absent, or both are present and unequal.
// Fully surveyed systems (both present and equal) are dropped. Input order is
// preserved.
//
// Body counts are reset to unknown on the produced records; route planning
// must not assume they are populated.
func FilterCandidates(docs []edsm.System) []*stars.StarSystem {
	out := make([]*stars.StarSystem, 0, len(docs))
	for _, doc := range docs {
		if surveyed(doc.BodyCount, doc.Bodies) {
			continue
		}
		sys := doc.ToStarSystem()
		sys.ClearBodies()
		out = append(out, sys)
	}
	log.Printf("[Filter] Kept %d of %d systems", len(out), len(docs))
	return out
}

// surveyed reports whether both counts are present and agree.
func surveyed(reported, confirmed *int) bool {
	return reported != nil && confirmed != nil && *reported == *confirmed
}
