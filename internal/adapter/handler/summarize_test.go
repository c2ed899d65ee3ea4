package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/domain/entities"
	pkgvalidator "github.com/meeting-minute/backend/pkg/validator"
)

type stubService struct {
	summary      *entities.MeetingSummary
	emails       []entities.EmailResult
	err          error
	processCalls int
	emailCalls   int
	lastRequest  entities.MeetingRequest
}

func (s *stubService) ProcessMeeting(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) (*entities.MeetingSummary, error) {
	s.processCalls++
	s.lastRequest = req
	return s.summary, s.err
}

func (s *stubService) DraftEmails(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) ([]entities.EmailResult, error) {
	s.emailCalls++
	s.lastRequest = req
	return s.emails, s.err
}

func newMeetingForm(t *testing.T, metadata string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("meeting", metadata))
	if withFile {
		part, err := writer.CreateFormFile("file", "meeting.wav")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-audio-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func performSummarize(t *testing.T, svc *stubService, metadata string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := newMeetingForm(t, metadata, withFile)
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	c := e.NewContext(req, rec)
	controller := NewSummarizeController(svc, nil)
	require.NoError(t, controller.Summarize(c))
	return rec
}

func TestSummarize_Success(t *testing.T) {
	ann := entities.Participant{Name: "Ann", Email: "a@x.com"}
	bo := entities.Participant{Name: "Bo", Email: "b@x.com"}
	svc := &stubService{
		summary: &entities.MeetingSummary{
			Summary: "Alpha team discussed the release.",
			ActionItems: []entities.ActionItemResult{
				{Participant: ann, Items: "- [ ] ship it"},
				{Participant: bo, Items: "- [ ] test it"},
			},
		},
	}

	metadata := `{"team_name":"Alpha","users":[{"name":"Ann","email":"a@x.com"},{"name":"Bo","email":"b@x.com"}]}`
	rec := performSummarize(t, svc, metadata, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Summary     string `json:"summary"`
		ActionItems []struct {
			User struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
			ActionItems string `json:"action_items"`
			Error       string `json:"error"`
		} `json:"action_items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Summary)
	require.Len(t, resp.ActionItems, 2)
	assert.Equal(t, "Ann", resp.ActionItems[0].User.Name)
	assert.Equal(t, "Bo", resp.ActionItems[1].User.Name)

	// The parsed metadata reached the service in input order.
	require.Len(t, svc.lastRequest.Participants, 2)
	assert.Equal(t, "Alpha", svc.lastRequest.TeamName)
	assert.Equal(t, ann, svc.lastRequest.Participants[0])
	assert.Equal(t, bo, svc.lastRequest.Participants[1])
}

func TestSummarize_InvalidJSONIsTerminal(t *testing.T) {
	svc := &stubService{}
	rec := performSummarize(t, svc, `{bad`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid JSON format"}`, rec.Body.String())
	// The pipeline never ran, so no outbound call was possible.
	assert.Zero(t, svc.processCalls)
}

func TestSummarize_MissingAudioFile(t *testing.T) {
	svc := &stubService{}
	rec := performSummarize(t, svc, `{"team_name":"Alpha","users":[]}`, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Missing audio file"}`, rec.Body.String())
	assert.Zero(t, svc.processCalls)
}

func TestSummarize_AuthFailureBody(t *testing.T) {
	svc := &stubService{err: errors.ErrAuthFailed(fmt.Errorf("status 400"))}
	rec := performSummarize(t, svc, `{"team_name":"Alpha","users":[{"name":"Ann","email":"a@x.com"}]}`, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Failed to authenticate with WatsonX"}`, rec.Body.String())
}

func TestSummarize_UnclassifiedFailureIsMasked(t *testing.T) {
	svc := &stubService{err: errors.ErrTranscriptionFailed(fmt.Errorf("stt exploded with secret detail"))}
	rec := performSummarize(t, svc, `{"team_name":"Alpha","users":[]}`, true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"An internal server error occurred"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestDraftEmails_Success(t *testing.T) {
	svc := &stubService{
		emails: []entities.EmailResult{
			{Participant: entities.Participant{Name: "Ann", Email: "a@x.com"}, Email: "Dear Ann"},
			{Participant: entities.Participant{Name: "Bo", Email: "b@x.com"}, Err: "model refused"},
		},
	}

	body, contentType := newMeetingForm(t, `{"team_name":"Alpha","users":[{"name":"Ann","email":"a@x.com"},{"name":"Bo","email":"b@x.com"}]}`, true)
	req := httptest.NewRequest(http.MethodPost, "/api/emails", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	c := e.NewContext(req, rec)
	controller := NewSummarizeController(svc, nil)
	require.NoError(t, controller.DraftEmails(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Emails []struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
			Email string `json:"email"`
			Error string `json:"error"`
		} `json:"emails"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Emails, 2)
	assert.Equal(t, "Dear Ann", resp.Emails[0].Email)
	assert.Equal(t, "model refused", resp.Emails[1].Error)
	assert.Equal(t, 1, svc.emailCalls)
}
