// Package aicopy drafts Greek marketing copy with the Gemini API.
package aicopy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// SEOResult is a generated meta title and description pair.
type SEOResult struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// ContentItem is one titled bullet in a generated sector page.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SectorContent is a generated deep-dive page structure for a sector.
type SectorContent struct {
	ExecutiveSummary string        `json:"executiveSummary"`
	Challenges       []ContentItem `json:"challenges"`
	Solutions        []ContentItem `json:"solutions"`
	Benefits         []ContentItem `json:"benefits"`
	FutureOutlook    string        `json:"futureOutlook"`
}

// Service generates copy through a Gemini model.
type Service struct {
	client *genai.Client
	model  string
}

// NewService creates a new copywriting service.
func NewService(apiKey, model string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Service{client: client, model: model}, nil
}

// GenerateSEO produces a meta title and description for a piece of content.
// contentType distinguishes the prompt context, e.g. "sector" or "case-study".
func (s *Service) GenerateSEO(ctx context.Context, title, description, content, contentType string) (SEOResult, error) {
	snippet := content
	if len(snippet) > 800 {
		snippet = snippet[:800]
	}

	prompt := fmt.Sprintf(`You are an expert SEO specialist for "DGCONSULT", a Digital Transformation Consultancy in Greece (AgTech, IoT, Industry 4.0).

Please generate an optimized Meta Title and Meta Description in Greek based on the following content.

Context:
Type: %s
Title: %s
Description: %s
Content Snippet: %s

Requirements:
- Meta Title: Max 60 characters. Professional, includes main keyword.
- Meta Description: Max 155 characters. Compelling summary for click-through rate.
- Output strictly valid JSON with keys: "metaTitle", "metaDescription".`,
		contentType, title, description, snippet)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return SEOResult{}, err
	}

	var result SEOResult
	if err := parseModelJSON(raw, &result); err != nil {
		return SEOResult{}, err
	}
	return result, nil
}

// GenerateSectorContent produces a full page structure for a sector.
func (s *Service) GenerateSectorContent(ctx context.Context, title, description string) (SectorContent, error) {
	prompt := fmt.Sprintf(`You are an expert strategic business consultant and technical writer for "DGCONSULT", a Digital Transformation Consultancy in Greece.

Target Sector: %s
Brief Overview: %s

Please generate a professional, deep-dive content structure for this sector in GREEK.
The response must be a VALID JSON object with the following structure:
{
    "executiveSummary": "A high-level summary of how DGCONSULT transforms this sector.",
    "challenges": [
        { "title": "Challenge Name", "description": "Short explanation of the pain point" }
    ],
    "solutions": [
        { "title": "Our Approach", "description": "How we solve it with tech/AI/consulting" }
    ],
    "benefits": [
        { "title": "Benefit", "description": "Measurable value" }
    ],
    "futureOutlook": "A visionary closing statement about where this sector is heading with digital innovation."
}

Requirements:
- Tone: Professional, authoritative, innovative.
- Language: Greek.
- Quantity: 3-4 items for challenges, solutions, and benefits.
- Output: ONLY the JSON object.`, title, description)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return SectorContent{}, err
	}

	var result SectorContent
	if err := parseModelJSON(raw, &result); err != nil {
		return SectorContent{}, err
	}
	return result, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}

// parseModelJSON unmarshals model output into v, tolerating markdown fences
// around the JSON object.
func parseModelJSON(raw string, v interface{}) error {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("failed to parse AI response: %w", err)
	}
	return nil
}
