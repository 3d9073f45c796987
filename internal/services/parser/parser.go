// Package parser turns free-text oracle replies into validated Q&A data.
//
// The oracle does not enforce an output schema, so replies may wrap the JSON
// payload in prose or markdown fences. Every failure to recover a usable
// payload is reported as a models.MalformedResponseError.
package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/ternarybob/qanda/internal/models"
)

// ExtractJSONSpan returns the candidate JSON array embedded in text.
//
// The span runs from the first '[' to the last ']' inclusive. When no such
// pair exists the first '{' to the last '}' is wrapped in brackets so a
// single-object reply becomes a one-element array.
func ExtractJSONSpan(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end > start {
		return text[start : end+1], nil
	}

	objStart := strings.Index(text, "{")
	objEnd := strings.LastIndex(text, "}")
	if objStart != -1 && objEnd > objStart {
		return "[" + text[objStart:objEnd+1] + "]", nil
	}

	return "", models.NewMalformedResponse("could not find a valid JSON structure in the response", nil)
}

// ParseQAList parses a JSON array span into question/answer pairs.
//
// Elements that are not objects or lack a non-empty question or answer are
// dropped. The call fails when the span is not a JSON array, the array is
// empty, or no element survives validation.
func ParseQAList(span string) ([]models.QAPair, error) {
	elements, err := decodeArray(span)
	if err != nil {
		return nil, err
	}
	return qaPairs(elements)
}

// qaPairs keeps the elements that decode to a valid question/answer pair
func qaPairs(elements []json.RawMessage) ([]models.QAPair, error) {
	pairs := make([]models.QAPair, 0, len(elements))
	for _, raw := range elements {
		var pair models.QAPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			continue
		}
		pair.Question = strings.TrimSpace(pair.Question)
		pair.Answer = strings.TrimSpace(pair.Answer)
		if !pair.Valid() {
			continue
		}
		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return nil, models.NewMalformedResponse("no element carries both a question and an answer", nil)
	}

	return pairs, nil
}

// ParseResponse extracts and parses the Q&A array from a raw reply, decoding it once, and
// reports how many elements were dropped by validation.
func ParseResponse(text string) ([]models.QAPair, int, error) {
	span, err := ExtractJSONSpan(text)
	if err != nil {
		return nil, 0, err
	}

	elements, err := decodeArray(span)
	if err != nil {
		return nil, 0, err
	}

	pairs, err := qaPairs(elements)
	if err != nil {
		return nil, len(elements), err
	}
	return pairs, len(elements) - len(pairs), nil
}

// ExtractSources maps citation records to sources, drops records missing a
// URI or title, and removes later duplicates of a URI. First occurrence wins,
// including its title.
func ExtractSources(citations []models.Citation) []models.Source {
	sources := make([]models.Source, 0, len(citations))
	seen := make(map[string]struct{}, len(citations))

	for _, c := range citations {
		uri := strings.TrimSpace(c.URI)
		title := strings.TrimSpace(c.Title)
		if uri == "" || title == "" {
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		sources = append(sources, models.Source{URI: uri, Title: title})
	}

	return sources
}

type summaryEntry struct {
	URI     string `json:"uri"`
	Summary string `json:"summary"`
}

// ParseSummaries parses an enrichment reply into a uri -> summary map.
// Entries without a uri or summary are ignored; an empty map is an error.
func ParseSummaries(text string) (map[string]string, error) {
	span, err := ExtractJSONSpan(text)
	if err != nil {
		return nil, err
	}

	elements, err := decodeArray(span)
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]string, len(elements))
	for _, raw := range elements {
		var entry summaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		uri := strings.TrimSpace(entry.URI)
		summary := strings.TrimSpace(entry.Summary)
		if uri == "" || summary == "" {
			continue
		}
		if _, exists := summaries[uri]; !exists {
			summaries[uri] = summary
		}
	}

	if len(summaries) == 0 {
		return nil, models.NewMalformedResponse("no usable summaries in response", nil)
	}
	return summaries, nil
}

// ApplySummaries returns a copy of sources with summaries attached by exact URI match.
func ApplySummaries(sources []models.Source, summaries map[string]string) []models.Source {
	out := make([]models.Source, len(sources))
	for i, s := range sources {
		out[i] = s
		if summary, ok := summaries[s.URI]; ok {
			out[i].Summary = summary
		}
	}
	return out
}

func decodeArray(span string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elements); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, models.NewMalformedResponse("top-level value is not an array", err)
		}
		return nil, models.NewMalformedResponse("invalid JSON", err)
	}
	if len(elements) == 0 {
		return nil, models.NewMalformedResponse("empty array", nil)
	}
	return elements, nil
}
