package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNoAPIKey = errors.New("extract: missing API key")

const geminiPrompt = `You are an order intake assistant for a small retail business.
Extract a structured order from the message below. Respond with JSON only:
{"customer_name": string, "items": [{"name": string, "quantity": int, "price": number}], "total_amount": number, "delivery_fee": number, "source": string}
source must be one of: WhatsApp, Instagram, Facebook, TikTok, Walk-in, Phone Call, Other.
Message:
`

// Gemini calls the hosted Generative Language API. Requests are bounded by
// the client timeout and the caller's context; any transport, status or
// decode problem comes back as an error so the caller can degrade to manual
// entry instead of crashing.
type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewGemini(apiKey string, timeout time.Duration) *Gemini {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Gemini{
		APIKey:  apiKey,
		Model:   "gemini-2.0-flash",
		BaseURL: "https://generativelanguage.googleapis.com",
		Client:  &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Extract(ctx context.Context, text string) (*Draft, error) {
	if g.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	var reqBody geminiRequest
	reqBody.Contents = []geminiContent{{Parts: []geminiPart{{Text: geminiPrompt + text}}}}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("extract: encode request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("extract: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract: call model: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extract: model returned %d: %s", resp.StatusCode, string(body))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("extract: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("extract: empty model response")
	}

	var draft Draft
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &draft); err != nil {
		return nil, fmt.Errorf("extract: malformed draft JSON: %w", err)
	}
	if draft.TotalAmount <= 0 {
		// Models sometimes leave the total blank; recover it from the lines.
		for _, line := range draft.Items {
			draft.TotalAmount += float64(line.Quantity) * line.Price
		}
	}
	return &draft, nil
}
