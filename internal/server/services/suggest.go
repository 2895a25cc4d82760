package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sanjaympqwer/TASK-MASTER/internal/common"
	"github.com/sanjaympqwer/TASK-MASTER/internal/server/config"
)

const suggestSystemPrompt = "You are an assistant that writes concise task descriptions. " +
	"Given a task title and, when present, its current description, reply with a single " +
	"short paragraph (1-2 sentences) suggesting a new and improved description. Reply " +
	"with the description only, no preamble."

// SuggestionService generates a task description for a title by calling an
// OpenAI-compatible chat completions endpoint.
type SuggestionService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewSuggestionService constructs a SuggestionService from server config.
func NewSuggestionService(cfg *config.Config) *SuggestionService {
	return &SuggestionService{
		baseURL: strings.TrimRight(cfg.SuggestBaseURL, "/"),
		apiKey:  cfg.SuggestAPIKey,
		model:   cfg.SuggestModel,
		client:  &http.Client{Timeout: cfg.SuggestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SuggestDescription returns a generated description for the given title.
// A non-empty existingDescription is fed into the prompt so the model refines
// it rather than starting from scratch. Transport and upstream API failures
// map to ErrorSuggestionUnavailable; existing tasks are never touched.
func (s *SuggestionService) SuggestDescription(ctx context.Context, title, existingDescription string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	prompt := fmt.Sprintf("Task title: %s", strings.TrimSpace(title))
	if desc := strings.TrimSpace(existingDescription); desc != "" {
		prompt += fmt.Sprintf("\nExisting description: %s", desc)
	}

	reqBody := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: suggestSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", common.ErrorSuggestionUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", common.ErrorSuggestionUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", common.ErrorSuggestionUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", common.ErrorSuggestionUnavailable
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", common.ErrorSuggestionUnavailable
	}
	if len(result.Choices) == 0 {
		return "", common.ErrorSuggestionUnavailable
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", common.ErrorSuggestionUnavailable
	}
	return text, nil
}
