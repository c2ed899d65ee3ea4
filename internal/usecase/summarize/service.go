package summarize

import (
	"context"

	"go.uber.org/zap"

	"github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/domain/entities"
)

// Transcriber converts raw audio bytes to plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// TokenProvider exchanges the provider API key for a bearer token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Generator issues text-generation calls with a bearer token.
type Generator interface {
	Summarize(ctx context.Context, token, text string) (string, error)
	ActionItems(ctx context.Context, token, text string, p entities.Participant) (string, error)
	FollowUpEmail(ctx context.Context, token, text string, p entities.Participant) (string, error)
}

// Service defines the meeting pipeline orchestration methods
type Service interface {
	ProcessMeeting(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) (*entities.MeetingSummary, error)
	DraftEmails(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) ([]entities.EmailResult, error)
}

type service struct {
	transcriber Transcriber
	tokens      TokenProvider
	generator   Generator
	concurrency int
	logger      *zap.Logger
}

// NewService constructs the pipeline orchestration service. concurrency bounds
// the per-participant generation fan-out; values below 1 are clamped to 1.
func NewService(transcriber Transcriber, tokens TokenProvider, generator Generator, concurrency int, logger *zap.Logger) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &service{
		transcriber: transcriber,
		tokens:      tokens,
		generator:   generator,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessMeeting runs the full pipeline: transcription, token exchange,
// summarization, then per-participant action item generation. The first three
// steps are terminal on failure; an action item failure is isolated to the
// affected participant.
func (s *service) ProcessMeeting(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) (*entities.MeetingSummary, error) {
	transcript, token, err := s.prepare(ctx, req, audio, filename)
	if err != nil {
		return nil, err
	}

	summary, err := s.generator.Summarize(ctx, token, transcript)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("summarization failed",
				zap.String("team", req.TeamName),
				zap.Error(err),
			)
		}
		return nil, errors.ErrGenerationFailed(err)
	}

	items := s.fanOut(ctx, req.Participants,
		func(ctx context.Context, p entities.Participant) (string, error) {
			return s.generator.ActionItems(ctx, token, transcript, p)
		})

	results := make([]entities.ActionItemResult, len(items))
	for i, r := range items {
		results[i] = entities.ActionItemResult{
			Participant: r.participant,
			Items:       r.text,
			Err:         r.errText,
		}
		if r.errText != "" {
			results[i].Items = entities.ActionItemsNone
		}
	}

	return &entities.MeetingSummary{Summary: summary, ActionItems: results}, nil
}

// DraftEmails runs transcription and token exchange, then drafts a follow-up
// email per participant with the same isolation and ordering semantics as
// action items.
func (s *service) DraftEmails(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) ([]entities.EmailResult, error) {
	transcript, token, err := s.prepare(ctx, req, audio, filename)
	if err != nil {
		return nil, err
	}

	drafts := s.fanOut(ctx, req.Participants,
		func(ctx context.Context, p entities.Participant) (string, error) {
			return s.generator.FollowUpEmail(ctx, token, transcript, p)
		})

	results := make([]entities.EmailResult, len(drafts))
	for i, r := range drafts {
		results[i] = entities.EmailResult{
			Participant: r.participant,
			Email:       r.text,
			Err:         r.errText,
		}
	}
	return results, nil
}

// prepare performs the shared terminal steps: transcription and token exchange.
func (s *service) prepare(ctx context.Context, req entities.MeetingRequest, audio []byte, filename string) (transcript, token string, err error) {
	if s.logger != nil {
		s.logger.Info("transcribing meeting audio",
			zap.String("team", req.TeamName),
			zap.Int("participants", len(req.Participants)),
			zap.Int("audio_bytes", len(audio)),
		)
	}

	transcript, err = s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("transcription failed", zap.String("team", req.TeamName), zap.Error(err))
		}
		return "", "", errors.ErrTranscriptionFailed(err)
	}

	// Tokens are short lived and never cached; every run re-authenticates.
	token, err = s.tokens.Token(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("token exchange failed", zap.Error(err))
		}
		return "", "", errors.ErrAuthFailed(err)
	}

	return transcript, token, nil
}

// participantResult is one slot of the fan-out output.
type participantResult struct {
	participant entities.Participant
	text        string
	errText     string
}

// fanOut runs gen once per participant with bounded concurrency. Each call is
// independent: a failure is logged and recorded in that participant's slot.
// The returned slice preserves input order and always has exactly one entry
// per participant.
func (s *service) fanOut(ctx context.Context, participants []entities.Participant, gen func(context.Context, entities.Participant) (string, error)) []participantResult {
	results := make([]participantResult, len(participants))
	sem := make(chan struct{}, s.concurrency)
	done := make(chan int, len(participants))

	for i, p := range participants {
		go func(i int, p entities.Participant) {
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := gen(ctx, p)
			result := participantResult{participant: p, text: text}
			if err != nil {
				appErr := errors.ErrParticipantGenerationFailed(p.Name, err)
				if s.logger != nil {
					s.logger.Error("participant generation failed",
						zap.String("participant", p.Name),
						zap.String("email", p.Email),
						zap.Error(appErr),
					)
				}
				result.text = ""
				result.errText = err.Error()
			}
			results[i] = result
			done <- i
		}(i, p)
	}

	for range participants {
		<-done
	}
	return results
}
