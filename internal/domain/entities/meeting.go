package entities

// Participant is a meeting attendee. Identity is the (name, email) pair; no
// uniqueness is enforced.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MeetingRequest is the parsed metadata of an incoming summarize request.
type MeetingRequest struct {
	TeamName     string        `json:"team_name"`
	Participants []Participant `json:"users"`
}

// ActionItemResult holds the generated action items for one participant.
// A failed generation carries the error and the "None" sentinel item text;
// siblings are unaffected.
type ActionItemResult struct {
	Participant Participant
	Items       string
	Err         string
}

// ActionItemsNone is the sentinel item text recorded when generation failed
// for a participant.
const ActionItemsNone = "None"

// EmailResult holds the drafted follow-up email for one participant.
type EmailResult struct {
	Participant Participant
	Email       string
	Err         string
}

// MeetingSummary is the assembled pipeline output for one request. Nothing
// here survives past the HTTP response.
type MeetingSummary struct {
	Summary     string
	ActionItems []ActionItemResult
}
