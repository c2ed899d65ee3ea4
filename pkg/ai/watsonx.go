package ai

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/domain/entities"
	"github.com/meeting-minute/backend/pkg/config"
)

const (
	summarizePromptFormat = "Summarize Meeting:\n\n%s\n\nOutput:"

	actionItemsPromptFormat = "You are an assistant that extracts action items from meeting transcripts.\n" +
		"Given the transcript below, produce a markdown checklist of specific action items " +
		"relevant to %s (%s) and their role in the discussion. Only include tasks for this person.\n\n" +
		"Transcript:\n%s\n\nOutput:"

	emailPromptFormat = "You are an assistant that drafts follow-up emails after meetings.\n" +
		"Given the transcript below, write a short follow-up email addressed to %s (%s) " +
		"covering the decisions and tasks that concern them.\n\n" +
		"Transcript:\n%s\n\nOutput:"
)

// WatsonXClient issues text-generation requests against watsonx.ai.
type WatsonXClient struct {
	baseURL string
	version string
	project string
	modelID string
	gen     config.GenerationConfig
	client  *http.Client
	logger  *zap.Logger
}

// NewWatsonXClient creates a generation client using the provided config.
func NewWatsonXClient(cfg *config.WatsonXConfig, gen config.GenerationConfig, logger *zap.Logger) *WatsonXClient {
	return &WatsonXClient{
		baseURL: cfg.BaseURL,
		version: cfg.Version,
		project: cfg.ProjectID,
		modelID: cfg.ModelID,
		gen:     gen,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// generationRequest is the payload for /ml/v1/text/generation
type generationRequest struct {
	Input      string                `json:"input"`
	ModelID    string                `json:"model_id"`
	ProjectID  string                `json:"project_id"`
	Parameters generationParameters  `json:"parameters"`
	Moderation *moderationParameters `json:"moderations,omitempty"`
}

type generationParameters struct {
	DecodingMethod    string  `json:"decoding_method"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

type moderationParameters struct {
	HAP hapParameters `json:"hap"`
}

type hapParameters struct {
	Input  hapFilter `json:"input"`
	Output hapFilter `json:"output"`
	Mask   hapMask   `json:"mask"`
}

type hapFilter struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"`
}

type hapMask struct {
	RemoveEntityValue bool `json:"remove_entity_value"`
}

// generationResponse is the minimal response shape
type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// Generate sends one text-generation request and returns the first generated
// text candidate. Transport failures are classified and logged before being
// surfaced; non-200 responses carry the provider body.
func (w *WatsonXClient) Generate(ctx context.Context, token, input string) (string, error) {
	reqBody := generationRequest{
		Input:     input,
		ModelID:   w.modelID,
		ProjectID: w.project,
		Parameters: generationParameters{
			DecodingMethod:    "greedy",
			MaxNewTokens:      w.gen.MaxNewTokens,
			RepetitionPenalty: w.gen.RepetitionPenalty,
		},
	}
	if w.gen.HAPEnabled {
		filter := hapFilter{Enabled: true, Threshold: w.gen.HAPThreshold}
		reqBody.Moderation = &moderationParameters{
			HAP: hapParameters{
				Input:  filter,
				Output: filter,
				Mask:   hapMask{RemoveEntityValue: true},
			},
		}
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/ml/v1/text/generation?version=%s", w.baseURL, w.version)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", w.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if w.logger != nil {
			w.logger.Error("watsonx generation rejected",
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(respBody)),
			)
		}
		return "", fmt.Errorf("watsonx returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var gr generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(gr.Results) == 0 {
		return "", fmt.Errorf("empty result list from watsonx")
	}
	return gr.Results[0].GeneratedText, nil
}

// Summarize wraps Generate with the fixed summarization prompt. Long
// transcripts are passed verbatim, no chunking.
func (w *WatsonXClient) Summarize(ctx context.Context, token, text string) (string, error) {
	return w.Generate(ctx, token, fmt.Sprintf(summarizePromptFormat, text))
}

// ActionItems wraps Generate with the per-participant action item prompt.
func (w *WatsonXClient) ActionItems(ctx context.Context, token, text string, p entities.Participant) (string, error) {
	return w.Generate(ctx, token, fmt.Sprintf(actionItemsPromptFormat, p.Name, p.Email, text))
}

// FollowUpEmail wraps Generate with the per-participant email prompt.
func (w *WatsonXClient) FollowUpEmail(ctx context.Context, token, text string, p entities.Participant) (string, error) {
	return w.Generate(ctx, token, fmt.Sprintf(emailPromptFormat, p.Name, p.Email, text))
}

// classifyTransportError maps network failures onto the closed error set:
// connection, timeout, or generic transport.
func (w *WatsonXClient) classifyTransportError(err error) error {
	var netErr net.Error
	switch {
	case stdErrors.Is(err, syscall.ECONNREFUSED), stdErrors.Is(err, syscall.EHOSTUNREACH):
		if w.logger != nil {
			w.logger.Error("watsonx connection failed", zap.Error(err))
		}
		return apperrors.ErrProviderConnection("WatsonX", err)
	case stdErrors.As(err, &netErr) && netErr.Timeout():
		if w.logger != nil {
			w.logger.Error("watsonx request timed out", zap.Error(err))
		}
		return apperrors.ErrProviderTimeout("WatsonX", err)
	default:
		if w.logger != nil {
			w.logger.Error("watsonx request failed", zap.Error(err))
		}
		return apperrors.ErrProviderTransport("WatsonX", err)
	}
}
