package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/qanda/internal/models"
)

func TestFormatResult(t *testing.T) {
	out := formatResult(&models.GenerationResult{
		ID:         "qa_1",
		Topic:      "Volcanoes",
		Difficulty: models.DifficultyHard,
		QAList:     []models.QAPair{{Question: "Tallest volcano?", Answer: "Mauna Kea"}},
		Sources:    []models.Source{{URI: "https://v.example", Title: "Volcano facts", Summary: "Facts."}},
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	assert.Contains(t, out, "# Q&A: Volcanoes")
	assert.Contains(t, out, "### 1. Tallest volcano?\nMauna Kea")
	assert.Contains(t, out, "- [Volcano facts](https://v.example): Facts.")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
}

func TestFormatHistory(t *testing.T) {
	assert.Contains(t, formatHistory(nil), "No results found.")

	out := formatHistory([]*models.GenerationResult{{ID: "qa_1", Topic: "Go", Difficulty: models.DifficultyEasy}})
	assert.Contains(t, out, "(1 results)")
	assert.Contains(t, out, "**Go** (easy, 0 questions, 0 sources) `qa_1`")
}
