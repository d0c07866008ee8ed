package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	maxAttempts = 3
	baseDelay   = time.Second
)

// Client wraps the Gemini API client with bounded retries for transient
// failures. Retry policy lives here rather than in the engine so every
// step inherits it.
type Client struct {
	genai  *genai.Client
	logger *slog.Logger
}

func NewClient(ctx context.Context, apiKey string, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrAPIKeyRequired
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	return &Client{
		genai:  gc,
		logger: logger.With("system", "gemini"),
	}, nil
}

// generate calls the model, retrying transient failures with exponential
// backoff. Non-transient errors and context cancellation return immediately.
func (c *Client) generate(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := range maxAttempts {
		resp, err := c.genai.Models.GenerateContent(ctx, model, contents, config)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !transient(err) {
			return nil, err
		}
		if attempt == maxAttempts-1 {
			break
		}

		delay := baseDelay << attempt
		c.logger.WarnContext(ctx, "retrying generation",
			"model", model,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func transient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || (apiErr.Code >= 500 && apiErr.Code < 600)
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// textContent wraps a prompt as the single-turn user content the
// generation API expects.
func textContent(prompt string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// groundingSources extracts web grounding chunks as numbered citation
// lines: the title on one line, the URI indented beneath it.
func groundingSources(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	var sources []string
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}

		title := chunk.Web.Title
		if title == "" {
			title = "Untitled Source"
		}
		sources = append(sources, fmt.Sprintf("%d. %s\n   %s", len(sources)+1, title, chunk.Web.URI))
	}
	return sources
}

// firstAudio returns the first inline audio payload in the response.
func firstAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return nil
	}

	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
