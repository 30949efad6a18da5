package models

// Event is a selectable record from the event directory. The directory may
// attach additional fields; only the slug and human-readable date matter
// here, the rest is ignored on decode.
type Event struct {
	Slug      string `json:"slug"`
	DateHuman string `json:"date_human"`
}

// EventsResponse is the envelope returned by GET /api/proxy-events.
type EventsResponse struct {
	Events []Event `json:"events"`
}
