package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jake-kelley/hold-or-sell/domain"
)

// ExplanationService turns the final-year recommendation into a short
// plain-language explanation. When OPENAI_API_KEY is unset, or the API
// call fails, a deterministic fallback text is used instead.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewExplanationService() *ExplanationService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	enabled := apiKey != ""

	return &ExplanationService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ExplainRecommendation generates the explanation for the projection's
// final-year recommendation.
func (s *ExplanationService) ExplainRecommendation(
	input domain.ScenarioInput,
	result domain.AnalysisResult,
) string {
	final := result.FinalYear()

	if !s.enabled {
		return s.fallbackExplanation(input, final)
	}

	prompt := fmt.Sprintf(`Analyze this rent-vs-sell projection for a rental property and generate a clear, educational explanation.

PROPERTY:
- Purchase price: $%.0f
- Current home value: $%.0f
- Current loan balance: $%.0f
- Monthly rent: $%.0f

PROJECTION AT YEAR %d (the hold horizon):
- Net worth if kept as a rental (equity + cumulative after-tax cash flow): $%.0f
- Net worth if sold now and proceeds invested at %.1f%%: $%.0f
- Recommendation: %s

INSTRUCTIONS:
1. Explain in simple terms why %s comes out ahead over this horizon.
2. Mention the role of equity growth, rental cash flow, selling costs and capital-gains tax.
3. Be realistic about the assumptions (appreciation %.1f%%, rent growth %.1f%%).

Generate a 3-4 sentence explanation that anyone can understand.`,
		input.PurchasePrice, result.CurrentHomeValue, result.CurrentLoanBalance,
		input.RentalPrice, final.Year, final.RentNetWorth,
		input.InvestmentReturn, final.SellNetWorth, final.Recommendation,
		final.Recommendation, input.HomeAppreciation, input.AnnualRentIncrease)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for recommendation: %v", err)
		return s.fallbackExplanation(input, final)
	}

	return explanation
}

func (s *ExplanationService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a real-estate financial advisor. You explain rent-versus-sell tradeoffs for individual property owners in clear, plain English, always grounding your explanation in the specific numbers provided. You never give generic advice and you acknowledge the uncertainty of appreciation and return assumptions.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *ExplanationService) fallbackExplanation(
	input domain.ScenarioInput,
	final domain.YearSnapshot,
) string {
	if final.Recommendation == domain.RecommendRent {
		return fmt.Sprintf("Keeping the property as a rental is projected to leave you with $%.0f at year %d, versus $%.0f if you sell now and invest the after-tax proceeds at %.1f%%. The rental's equity growth and cash flow outpace the invested sale proceeds over this horizon.",
			final.RentNetWorth, final.Year, final.SellNetWorth, input.InvestmentReturn)
	}
	return fmt.Sprintf("Selling now and investing the after-tax proceeds at %.1f%% is projected to leave you with $%.0f at year %d, versus $%.0f if you keep the property as a rental. Selling costs and taxes are outweighed by the compounding on the freed-up equity over this horizon.",
		input.InvestmentReturn, final.SellNetWorth, final.Year, final.RentNetWorth)
}
