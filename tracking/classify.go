package tracking

import "strings"

// Category is the digest bucket a shipment falls into.
type Category int

const (
	CategoryNone Category = iota
	CategoryCustomsHeld
	CategoryAlert
	CategoryReturning
	CategoryProblem
)

func (c Category) String() string {
	switch c {
	case CategoryCustomsHeld:
		return "customs-held"
	case CategoryAlert:
		return "alert"
	case CategoryReturning:
		return "returning"
	case CategoryProblem:
		return "problem"
	default:
		return "none"
	}
}

// customsKeywords flag a shipment as held for customs/taxation when any of
// them appears in the latest carrier event. Matching is case-insensitive and
// the list mixes English carrier wording with the Portuguese variants the
// national carrier emits.
var customsKeywords = []string{
	"customs",
	"clearance",
	"taxa",
	"imposto",
	"tributação",
	"alfândega",
	"fiscalização",
	"desembaraço",
	"declaração",
	"autoridade competente",
}

// customsStatuses are provider status codes that mean customs processing on
// their own, without any keyword in the event text.
var customsStatuses = map[string]bool{
	"intransit_customsprocessing": true,
	"exception_security":          true,
	"deliveryfailure_security":    true,
	"customshold":                 true,
}

// problemStatuses bucket into alert vs. other problems.
var problemStatuses = map[string]Category{
	"alert":       CategoryAlert,
	"expired":     CategoryProblem,
	"undelivered": CategoryProblem,
}

// Classify buckets a shipment by its latest status and event description.
// Returning-to-sender wins over everything, then customs, then status-based
// alerts and problems.
func Classify(status, eventDescription string) Category {
	status = strings.ToLower(strings.TrimSpace(status))
	event := strings.ToLower(eventDescription)

	if strings.Contains(event, "returning to sender") || strings.Contains(event, "retornando ao remetente") {
		return CategoryReturning
	}
	if customsStatuses[status] {
		return CategoryCustomsHeld
	}
	for _, kw := range customsKeywords {
		if strings.Contains(event, kw) {
			return CategoryCustomsHeld
		}
	}
	if cat, ok := problemStatuses[status]; ok {
		return cat
	}
	return CategoryNone
}

// ClassifyInfo applies Classify to a detailed track record.
func ClassifyInfo(info TrackInfo) Category {
	return Classify(info.Detail.LatestStatus.Status, info.Detail.LatestEvent.Description)
}

// ClassifySummary applies Classify to a track-list row, which only carries
// the condensed latest event text.
func ClassifySummary(s TrackingSummary) Category {
	return Classify(s.PackageStatus, s.LatestEventInfo)
}
