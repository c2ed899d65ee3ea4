package summarize

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/domain/entities"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeGenerator struct {
	mu           sync.Mutex
	summary      string
	summaryErr   error
	summaryCalls int
	itemCalls    []string
	failFor      map[string]error
	emailCalls   []string
	emailFailFor map[string]error
}

func (f *fakeGenerator) Summarize(ctx context.Context, token, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	return f.summary, f.summaryErr
}

func (f *fakeGenerator) ActionItems(ctx context.Context, token, text string, p entities.Participant) (string, error) {
	f.mu.Lock()
	f.itemCalls = append(f.itemCalls, p.Name)
	f.mu.Unlock()
	if err, ok := f.failFor[p.Name]; ok {
		return "", err
	}
	return "- [ ] task for " + p.Name, nil
}

func (f *fakeGenerator) FollowUpEmail(ctx context.Context, token, text string, p entities.Participant) (string, error) {
	f.mu.Lock()
	f.emailCalls = append(f.emailCalls, p.Name)
	f.mu.Unlock()
	if err, ok := f.emailFailFor[p.Name]; ok {
		return "", err
	}
	return "Dear " + p.Name, nil
}

func participants(names ...string) []entities.Participant {
	ps := make([]entities.Participant, len(names))
	for i, n := range names {
		ps[i] = entities.Participant{Name: n, Email: n + "@x.com"}
	}
	return ps
}

func TestProcessMeeting_OrderPreservingResults(t *testing.T) {
	gen := &fakeGenerator{summary: "the summary"}
	svc := NewService(&fakeTranscriber{text: "transcript"}, &fakeTokens{token: "tok"}, gen, 3, nil)

	req := entities.MeetingRequest{
		TeamName:     "Alpha",
		Participants: participants("Ann", "Bo", "Cleo", "Dee"),
	}

	out, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
	require.NoError(t, err)
	assert.Equal(t, "the summary", out.Summary)
	require.Len(t, out.ActionItems, 4)
	for i, name := range []string{"Ann", "Bo", "Cleo", "Dee"} {
		assert.Equal(t, name, out.ActionItems[i].Participant.Name)
		assert.Equal(t, "- [ ] task for "+name, out.ActionItems[i].Items)
		assert.Empty(t, out.ActionItems[i].Err)
	}
}

func TestProcessMeeting_ParticipantFailureIsolated(t *testing.T) {
	gen := &fakeGenerator{
		summary: "the summary",
		failFor: map[string]error{"Bo": fmt.Errorf("model refused")},
	}
	svc := NewService(&fakeTranscriber{text: "transcript"}, &fakeTokens{token: "tok"}, gen, 2, nil)

	req := entities.MeetingRequest{TeamName: "Alpha", Participants: participants("Ann", "Bo", "Cleo")}

	out, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
	require.NoError(t, err)
	require.Len(t, out.ActionItems, 3)

	assert.Equal(t, "- [ ] task for Ann", out.ActionItems[0].Items)
	assert.Empty(t, out.ActionItems[0].Err)

	assert.Equal(t, entities.ActionItemsNone, out.ActionItems[1].Items)
	assert.Contains(t, out.ActionItems[1].Err, "model refused")

	assert.Equal(t, "- [ ] task for Cleo", out.ActionItems[2].Items)
	assert.Empty(t, out.ActionItems[2].Err)
}

func TestProcessMeeting_TranscriptionFailureTerminal(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	gen := &fakeGenerator{summary: "s"}
	svc := NewService(&fakeTranscriber{err: fmt.Errorf("stt down")}, tokens, gen, 1, nil)

	req := entities.MeetingRequest{Participants: participants("Ann")}
	_, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_TRANSCRIPTION_FAILED, appErr.Code)

	// Nothing downstream ran.
	assert.Zero(t, tokens.calls)
	assert.Zero(t, gen.summaryCalls)
	assert.Empty(t, gen.itemCalls)
}

func TestProcessMeeting_AuthFailureStopsGeneration(t *testing.T) {
	gen := &fakeGenerator{summary: "s"}
	svc := NewService(&fakeTranscriber{text: "t"}, &fakeTokens{err: fmt.Errorf("bad key")}, gen, 1, nil)

	req := entities.MeetingRequest{Participants: participants("Ann", "Bo")}
	_, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_AUTH_FAILED, appErr.Code)
	assert.Equal(t, "Failed to authenticate with WatsonX", appErr.Message)

	assert.Zero(t, gen.summaryCalls)
	assert.Empty(t, gen.itemCalls)
}

func TestProcessMeeting_SummaryFailureTerminal(t *testing.T) {
	gen := &fakeGenerator{summaryErr: fmt.Errorf("generation broke")}
	svc := NewService(&fakeTranscriber{text: "t"}, &fakeTokens{token: "tok"}, gen, 1, nil)

	req := entities.MeetingRequest{Participants: participants("Ann")}
	_, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_GENERATION_FAILED, appErr.Code)
	assert.Empty(t, gen.itemCalls)
}

func TestProcessMeeting_ReauthenticatesEveryRun(t *testing.T) {
	tokens := &fakeTokens{token: "tok"}
	gen := &fakeGenerator{summary: "s"}
	svc := NewService(&fakeTranscriber{text: "t"}, tokens, gen, 1, nil)

	req := entities.MeetingRequest{Participants: participants("Ann")}
	for i := 0; i < 2; i++ {
		_, err := svc.ProcessMeeting(context.Background(), req, []byte("audio"), "a.wav")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, tokens.calls)
}

func TestProcessMeeting_NoParticipants(t *testing.T) {
	gen := &fakeGenerator{summary: "s"}
	svc := NewService(&fakeTranscriber{text: "t"}, &fakeTokens{token: "tok"}, gen, 3, nil)

	out, err := svc.ProcessMeeting(context.Background(), entities.MeetingRequest{}, []byte("audio"), "a.wav")
	require.NoError(t, err)
	assert.Empty(t, out.ActionItems)
	assert.Empty(t, gen.itemCalls)
}

func TestDraftEmails_IsolationAndOrder(t *testing.T) {
	gen := &fakeGenerator{emailFailFor: map[string]error{"Ann": fmt.Errorf("nope")}}
	svc := NewService(&fakeTranscriber{text: "t"}, &fakeTokens{token: "tok"}, gen, 2, nil)

	req := entities.MeetingRequest{Participants: participants("Ann", "Bo")}
	out, err := svc.DraftEmails(context.Background(), req, []byte("audio"), "a.wav")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Ann", out[0].Participant.Name)
	assert.Empty(t, out[0].Email)
	assert.Contains(t, out[0].Err, "nope")

	assert.Equal(t, "Bo", out[1].Participant.Name)
	assert.Equal(t, "Dear Bo", out[1].Email)
	assert.Empty(t, out[1].Err)
}
