package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meeting-minute/backend/pkg/config"
)

const apikeyGrantType = "urn:ibm:params:oauth:grant-type:apikey"

// IAMClient exchanges the long-lived watsonx API key for a short-lived bearer
// token. Tokens are not cached; every pipeline run re-authenticates.
type IAMClient struct {
	apiKey   string
	tokenURL string
	client   *http.Client
	logger   *zap.Logger
}

// NewIAMClient creates an IAM token client using the provided config.
func NewIAMClient(cfg *config.WatsonXConfig, logger *zap.Logger) *IAMClient {
	return &IAMClient{
		apiKey:   cfg.APIKey,
		tokenURL: cfg.IAMURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// tokenResponse is the minimal response shape of the identity endpoint
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token performs the API-key grant and returns the bearer token.
func (c *IAMClient) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", apikeyGrantType)
	form.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		if c.logger != nil {
			c.logger.Error("IAM token exchange rejected",
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(respBody)),
			)
		}
		return "", fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("identity provider returned an empty access token")
	}
	return tr.AccessToken, nil
}
