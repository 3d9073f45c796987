package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Difficulty is the requested question difficulty
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultNumQuestions is used when a caller omits the question count
const DefaultNumQuestions = 5

// ParseDifficulty normalises a difficulty string. Empty input defaults to medium.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", &ValidationError{Field: "difficulty", Message: "difficulty must be one of easy, medium, hard"}
}

// QAPair is a single generated question and its answer
type QAPair struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// Source is a deduplicated web page cited by the oracle. URI is the unique key.
type Source struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// Citation is a raw grounding record attached to an oracle reply, before filtering and dedup
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GenerationRequest is the input of one generation call
type GenerationRequest struct {
	Topic        string     `json:"topic" validate:"required"`
	Difficulty   Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	NumQuestions int        `json:"numQuestions" validate:"min=1"`
}

// GenerationResult is the output of one successful generation call
type GenerationResult struct {
	ID         string     `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	QAList     []QAPair   `json:"qaList"`
	Sources    []Source   `json:"sources"`
	Provider   string     `json:"provider"`
	Model      string     `json:"model"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// OracleReply is the text and out-of-band citation metadata returned by the oracle
type OracleReply struct {
	Text      string
	Citations []Citation
	Provider  string
	Model     string
}

var validate = validator.New()

// Validate checks the request shape. maxQuestions <= 0 disables the upper bound.
// The topic is trimmed in place.
func (r *GenerationRequest) Validate(maxQuestions int) error {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return &ValidationError{Field: "topic", Message: "Please enter a topic."}
	}

	if err := validate.Struct(r); err != nil {
		return newValidationErrorFromValidator(err)
	}

	if maxQuestions > 0 && r.NumQuestions > maxQuestions {
		return &ValidationError{Field: "numQuestions", Message: "numQuestions must not exceed " + strconv.Itoa(maxQuestions)}
	}
	return nil
}

// Valid reports whether the pair carries a non-empty question and answer
func (p QAPair) Valid() bool {
	return validate.Struct(p) == nil
}
