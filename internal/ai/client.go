package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// ErrNotConfigured means the server has no AI credentials and suggestion
// requests cannot be served.
var ErrNotConfigured = errors.New("ai provider not configured")

// ErrBadUpstream covers provider errors and unparseable completions.
var ErrBadUpstream = errors.New("ai provider request failed")

const maxCompletionTokens = 1024

// Client calls an OpenAI-compatible chat completions endpoint to generate
// gift suggestions. All three settings must be present for the client to
// be usable; Configured reports that.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient creates the suggestions client.
func NewClient(apiKey, baseURL, aiModel string, logger *logger.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   aiModel,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// Configured reports whether the client has a full set of credentials.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != "" && c.model != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest asks the provider for gift ideas tailored to the request. The
// completion is expected to be a bare JSON array; entries without a title
// or a numeric price are dropped.
func (c *Client) Suggest(ctx context.Context, req model.SuggestionRequest) ([]model.GiftSuggestion, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("AI client: provider error", "status", resp.StatusCode, "body", string(errText))
		return nil, fmt.Errorf("%w: status %d", ErrBadUpstream, resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadUpstream, err)
	}

	var content string
	if len(completion.Choices) > 0 {
		content = completion.Choices[0].Message.Content
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		c.logger.Error("AI client: unexpected completion format", "content", content)
		return nil, err
	}
	return suggestions, nil
}

const systemPrompt = "You are a thoughtful gift suggestion assistant for an app called Giftable. " +
	"You suggest creative, personalized gift ideas. Always respond with valid JSON only, " +
	"no markdown formatting, no code fences."

// buildPrompt renders the person's profile, remaining budget and gift
// history into the user message.
func buildPrompt(req model.SuggestionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suggest 4 gift ideas for %s (my %s).", req.PersonName, req.Relationship)
	if req.Notes != "" {
		fmt.Fprintf(&b, "\nAbout them: %s", req.Notes)
	}

	var spent float64
	for _, g := range req.ExistingGifts {
		if g.Status == model.GiftStatusPurchased || g.Status == model.GiftStatusGiven {
			spent += g.Price
		}
	}

	fmt.Fprintf(&b, "\n\nBudget remaining: $%g", req.Budget)
	if spent > 0 {
		fmt.Fprintf(&b, " (already spent $%g)", spent)
	}

	b.WriteString("\n\nTheir gift history:\n")
	if len(req.ExistingGifts) == 0 {
		b.WriteString("None yet.")
	} else {
		for i, g := range req.ExistingGifts {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "- %s", g.Title)
			if g.Price > 0 {
				fmt.Fprintf(&b, " ($%g)", g.Price)
			}
			if g.Status != "" {
				fmt.Fprintf(&b, " [%s]", g.Status)
			}
			if g.Notes != "" {
				fmt.Fprintf(&b, " (note: %s)", g.Notes)
			}
		}
	}

	b.WriteString(`

Guidelines:
- Don't repeat gifts they already have
- Use their notes and gift history to make truly personalized suggestions
- Keep prices within the remaining budget
- Be creative and specific, avoid generic gifts

Respond with a JSON array only. Each item must have:
- title: gift name (string)
- description: brief description (string)
- estimatedPrice: cost in dollars (number)
- reason: why this fits them specifically (string)

Return ONLY the JSON array, no other text.`)

	return b.String()
}

// parseSuggestions extracts the JSON array from the completion, tolerating
// surrounding prose, and drops malformed entries.
func parseSuggestions(content string) ([]model.GiftSuggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array in completion", ErrBadUpstream)
	}

	var raw []struct {
		Title          string          `json:"title"`
		Description    string          `json:"description"`
		EstimatedPrice json.RawMessage `json:"estimatedPrice"`
		Reason         string          `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadUpstream, err)
	}

	suggestions := make([]model.GiftSuggestion, 0, len(raw))
	for _, item := range raw {
		var price float64
		if item.Title == "" || json.Unmarshal(item.EstimatedPrice, &price) != nil {
			continue
		}
		suggestions = append(suggestions, model.GiftSuggestion{
			Title:          item.Title,
			Description:    item.Description,
			EstimatedPrice: price,
			Reason:         item.Reason,
		})
	}
	return suggestions, nil
}
