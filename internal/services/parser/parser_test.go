package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/qanda/internal/models"
)

func TestExtractJSONSpan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "surrounding prose",
			text: `Sure! Here you go: [{"question":"Q","answer":"A"}] Hope that helps!`,
			want: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name: "markdown fence",
			text: "```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```",
			want: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name: "first open to last close",
			text: `intro [1] middle [{"question":"Q","answer":"A"}] end`,
			want: `[1] middle [{"question":"Q","answer":"A"}]`,
		},
		{
			name: "single object wrapped",
			text: `Here: {"question":"Q","answer":"A"} done`,
			want: `[{"question":"Q","answer":"A"}]`,
		},
		{
			name: "closing bracket before opening falls back to object",
			text: `] {"question":"Q","answer":"A"} [`,
			want: `[{"question":"Q","answer":"A"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONSpan(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONSpan_ArbitraryProse(t *testing.T) {
	payload := `[{"question":"What year?","answer":"1776"},{"question":"Who?","answer":"Washington"}]`
	prefixes := []string{"", "Sure.", "Here is the JSON you asked for:\n", "No brackets here (really) "}
	suffixes := []string{"", " Thanks!", "\n\nLet me know {if} you need more.", " <end>"}

	for _, p := range prefixes {
		for _, s := range suffixes {
			got, err := ExtractJSONSpan(p + payload + s)
			require.NoError(t, err)
			assert.Equal(t, payload, got, "prefix=%q suffix=%q", p, s)
		}
	}
}

func TestExtractJSONSpan_NoStructure(t *testing.T) {
	for _, text := range []string{"", "I cannot help with that.", "only ] and [ reversed", "} {"} {
		_, err := ExtractJSONSpan(text)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, models.ErrMalformedResponse))

		var malformed *models.MalformedResponseError
		assert.True(t, errors.As(err, &malformed))
	}
}

func TestParseQAList(t *testing.T) {
	pairs, err := ParseQAList(`[{"question":" Q1 ","answer":"A1"},{"question":"Q2","answer":"A2"}]`)
	require.NoError(t, err)
	assert.Equal(t, []models.QAPair{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}, pairs)
}

func TestParseQAList_DropsInvalidElements(t *testing.T) {
	pairs, err := ParseQAList(`[{"question":"Q1","answer":"A1"},{"question":"Q2"},"text",42,null,{"question":"Q3","answer":"   "}]`)
	require.NoError(t, err)
	assert.Equal(t, []models.QAPair{{Question: "Q1", Answer: "A1"}}, pairs)
}

func TestParseQAList_Failures(t *testing.T) {
	tests := []struct {
		name string
		span string
	}{
		{"invalid json", `[{"question":"Q","answer":}]`},
		{"empty array", `[]`},
		{"not an array", `{"question":"Q","answer":"A"}`},
		{"no valid element", `[{"q":"x"},{"question":"","answer":"A"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := ParseQAList(tt.span)
			assert.Nil(t, pairs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrMalformedResponse))
		})
	}
}

func TestParseResponse(t *testing.T) {
	pairs, dropped, err := ParseResponse(`Sure! Here you go: [{"question":"Q","answer":"A"}] Hope that helps!`)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, []models.QAPair{{Question: "Q", Answer: "A"}}, pairs)

	pairs, dropped, err = ParseResponse(`[{"question":"Q","answer":"A"},{"question":"Q2"}]`)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Len(t, pairs, 1)

	_, _, err = ParseResponse("nothing useful")
	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
}

func TestParseResponse_FiveItems(t *testing.T) {
	text := "["
	for i := 1; i <= 5; i++ {
		if i > 1 {
			text += ","
		}
		text += fmt.Sprintf(`{"question":"Q%d","answer":"A%d"}`, i, i)
	}
	text += "]"

	pairs, _, err := ParseResponse(text)
	require.NoError(t, err)
	assert.Len(t, pairs, 5)
	assert.Equal(t, "Q5", pairs[4].Question)
}

func TestExtractSources(t *testing.T) {
	citations := []models.Citation{
		{URI: "https://a.example", Title: "First A"},
		{URI: "https://b.example", Title: "B"},
		{URI: "https://a.example", Title: "Second A"},
		{URI: "", Title: "No URI"},
		{URI: "https://c.example", Title: ""},
		{URI: "  https://b.example ", Title: "B again"},
	}

	sources := ExtractSources(citations)
	assert.Equal(t, []models.Source{
		{URI: "https://a.example", Title: "First A"},
		{URI: "https://b.example", Title: "B"},
	}, sources)
}

func TestExtractSources_NeverDuplicates(t *testing.T) {
	var citations []models.Citation
	for i := 0; i < 50; i++ {
		citations = append(citations, models.Citation{
			URI:   fmt.Sprintf("https://site%d.example", i%7),
			Title: fmt.Sprintf("title %d", i),
		})
	}

	sources := ExtractSources(citations)
	require.Len(t, sources, 7)

	seen := map[string]bool{}
	for i, s := range sources {
		assert.False(t, seen[s.URI], "duplicate uri %s", s.URI)
		seen[s.URI] = true
		assert.Equal(t, fmt.Sprintf("title %d", i), s.Title)
	}
}

func TestExtractSources_Empty(t *testing.T) {
	assert.Empty(t, ExtractSources(nil))
}

func TestParseSummaries(t *testing.T) {
	summaries, err := ParseSummaries("Here:\n" + `[{"uri":"https://a.example","summary":"About A."},{"uri":"https://b.example","summary":""},{"uri":"https://a.example","summary":"Again."}]`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://a.example": "About A."}, summaries)

	_, err = ParseSummaries(`[{"uri":"","summary":"x"}]`)
	assert.True(t, errors.Is(err, models.ErrMalformedResponse))

	_, err = ParseSummaries("no json")
	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
}

func TestApplySummaries(t *testing.T) {
	sources := []models.Source{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example", Title: "B"},
	}

	out := ApplySummaries(sources, map[string]string{
		"https://a.example":  "About A.",
		"https://a.example/": "Not an exact match.",
	})

	assert.Equal(t, "About A.", out[0].Summary)
	assert.Empty(t, out[1].Summary)
	assert.Empty(t, sources[0].Summary, "input must not be mutated")
}

func TestParseResponse_AllElementsInvalid(t *testing.T) {
	pairs, dropped, err := ParseResponse(`Result: [{"question":"Q"},{"answer":"A"},"text"]`)
	assert.Nil(t, pairs)
	assert.Equal(t, 3, dropped)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)

	_, dropped, err = ParseResponse(`[]`)
	assert.Equal(t, 0, dropped)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}
