package dto

import "github.com/meeting-minute/backend/internal/domain/entities"

// MeetingMetadata is the JSON metadata field of the multipart summarize
// request.
type MeetingMetadata struct {
	TeamName string    `json:"team_name"`
	Users    []UserDTO `json:"users" validate:"omitempty,dive"`
}

// UserDTO represents one participant in the request metadata.
type UserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SummarizeResponse is the body of a successful POST /api/summarize.
type SummarizeResponse struct {
	Summary     string           `json:"summary"`
	ActionItems []ActionItemsDTO `json:"action_items"`
}

// ActionItemsDTO holds the generated action items for one participant.
type ActionItemsDTO struct {
	User        UserDTO `json:"user"`
	ActionItems string  `json:"action_items"`
	Error       string  `json:"error,omitempty"`
}

// EmailsResponse is the body of a successful POST /api/emails.
type EmailsResponse struct {
	Emails []EmailDTO `json:"emails"`
}

// EmailDTO holds the drafted follow-up email for one participant.
type EmailDTO struct {
	User  UserDTO `json:"user"`
	Email string  `json:"email"`
	Error string  `json:"error,omitempty"`
}

// ToMeetingRequest maps the wire metadata onto the domain value object.
func (m MeetingMetadata) ToMeetingRequest() entities.MeetingRequest {
	req := entities.MeetingRequest{
		TeamName:     m.TeamName,
		Participants: make([]entities.Participant, len(m.Users)),
	}
	for i, u := range m.Users {
		req.Participants[i] = entities.Participant{Name: u.Name, Email: u.Email}
	}
	return req
}

// NewSummarizeResponse maps the pipeline output onto the wire shape.
func NewSummarizeResponse(summary *entities.MeetingSummary) SummarizeResponse {
	resp := SummarizeResponse{
		Summary:     summary.Summary,
		ActionItems: make([]ActionItemsDTO, len(summary.ActionItems)),
	}
	for i, item := range summary.ActionItems {
		resp.ActionItems[i] = ActionItemsDTO{
			User:        UserDTO{Name: item.Participant.Name, Email: item.Participant.Email},
			ActionItems: item.Items,
			Error:       item.Err,
		}
	}
	return resp
}

// NewEmailsResponse maps the drafted emails onto the wire shape.
func NewEmailsResponse(emails []entities.EmailResult) EmailsResponse {
	resp := EmailsResponse{Emails: make([]EmailDTO, len(emails))}
	for i, e := range emails {
		resp.Emails[i] = EmailDTO{
			User:  UserDTO{Name: e.Participant.Name, Email: e.Participant.Email},
			Email: e.Email,
			Error: e.Err,
		}
	}
	return resp
}
