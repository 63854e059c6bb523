package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Service generates practice question sets with Gemini.
type Service struct {
	Client *genai.Client
}

func NewService(apiKey string) (*Service, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create genai client: %w", err)
	}

	log.Println("AI practice-test service initialized")
	return &Service{Client: client}, nil
}

// GeneratePracticeTest asks the model for a set of multiple-choice questions
// on the given subject and returns them as raw JSON.
func (s *Service) GeneratePracticeTest(ctx context.Context, subject string, count int) (json.RawMessage, error) {
	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(`Create %d multiple-choice practice questions for a test-prep platform on the subject "%s".

Output MUST be a single JSON object with one top-level key "questions".
Each question MUST have the keys: "questionId" (unique string), "text",
"options" (array of 4 strings) and "answer" (the correct option).

Example format to follow exactly:
{
  "questions": [
    {"questionId": "q1", "text": "What is 12 + 9?", "options": ["19", "20", "21", "22"], "answer": "21"}
  ]
}`, count, subject)

	result, err := s.Client.Models.GenerateContent(
		ctx,
		"gemini-1.5-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("could not generate practice questions: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("no text content found in AI response")
	}

	// Models wrap JSON in prose or fences; slice out the outermost object.
	startIndex := strings.Index(text, "{")
	endIndex := strings.LastIndex(text, "}")
	if startIndex == -1 || endIndex <= startIndex {
		return nil, fmt.Errorf("could not find valid JSON object in AI response")
	}
	clean := text[startIndex : endIndex+1]

	var parsed struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("key 'questions' not found in AI response")
	}
	return parsed.Questions, nil
}
