package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/qanda/internal/models"
)

func TestBuildQAPrompt(t *testing.T) {
	prompt := BuildQAPrompt(models.GenerationRequest{
		Topic:        "The Roman Empire",
		Difficulty:   models.DifficultyHard,
		NumQuestions: 7,
	})

	assert.Contains(t, prompt, "Topic: The Roman Empire")
	assert.Contains(t, prompt, "Difficulty: hard")
	assert.Contains(t, prompt, "Number of Questions: 7")
	assert.Contains(t, prompt, "100% correct")
	assert.NotContains(t, prompt, "%!")
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("Rust", []models.Source{
		{URI: "https://a.example/1", Title: "One"},
		{URI: "https://b.example/2", Title: "Two"},
	})

	assert.Contains(t, prompt, `main topic "Rust"`)
	assert.Contains(t, prompt, "https://a.example/1\nhttps://b.example/2")
	assert.False(t, strings.Contains(prompt, "One"), "titles are not sent")
}
