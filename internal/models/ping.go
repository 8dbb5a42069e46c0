package models

// Ping represents one reported GPS sample for a user
type Ping struct {
	UserID    string   `json:"userId" binding:"required"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"` // meters, nil when the device did not report one
	Timestamp int64    `json:"timestamp"`          // Unix timestamp in seconds; 0 means "now"
	Source    string   `json:"source,omitempty"`   // e.g. "mobile", "import"
}

// PingOutcome is the closed set of results of processing one ping.
type PingOutcome int

const (
	// OutcomeIgnored: the ping was rejected (bad accuracy) or matched no place.
	OutcomeIgnored PingOutcome = iota
	// OutcomeAccumulating: the ping counted toward an unconfirmed candidate.
	OutcomeAccumulating
	// OutcomeVisitStarted: the ping confirmed a candidate into a new visit.
	OutcomeVisitStarted
	// OutcomeVisitExtended: the ping extended an existing open visit, or merged
	// a same-day re-entry into an existing visit.
	OutcomeVisitExtended
)

// String returns the wire name of the outcome
func (o PingOutcome) String() string {
	switch o {
	case OutcomeAccumulating:
		return "accumulating"
	case OutcomeVisitStarted:
		return "visit_started"
	case OutcomeVisitExtended:
		return "visit_extended"
	default:
		return "ignored"
	}
}
