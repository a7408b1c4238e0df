package studio

import (
	"context"
	"errors"

	"github.com/phambaophuc/ai-image-studio/internal/services/prompt"
	"go.uber.org/zap"
)

// GeneratePrompt fills the prompt input with an idea from the chat model.
// The controls stay locked until the request returns.
func (s *Studio) GeneratePrompt(ctx context.Context) (string, error) {
	release, err := s.guard.Acquire(true)
	if err != nil {
		return "", err
	}
	defer release()

	s.DismissBanner()

	text, err := s.prompts.GeneratePrompt(ctx)
	switch {
	case errors.Is(err, prompt.ErrNoPrompt):
		s.showError("Failed to generate a prompt. The AI might be offline.")
		s.guard.SetInput("Failed to generate prompt.")
		return "", err
	case err != nil:
		s.logger.Error("Prompt generation failed", zap.Error(err))
		s.showError("An error occurred while generating the prompt.")
		s.guard.SetInput("Error generating prompt.")
		return "", err
	}

	s.guard.SetInput(text)
	return text, nil
}
