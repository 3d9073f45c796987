package generation

import (
	"fmt"
	"strings"

	"github.com/ternarybob/qanda/internal/models"
)

const qaPromptTemplate = `You are an expert Question and Answer generation system. Your task is to generate a set of unique, factually accurate questions and answers based on a given topic, difficulty, and number of questions.

**CRITICAL INSTRUCTIONS:**
1.  **Factual Accuracy is Paramount:** Use the provided search tool to find and verify all information. Do not include any information that is not verifiable. All answers must be 100%% correct and reliable.
2.  **Uniqueness:** Ensure that no two questions in the generated set are duplicates or too similar.
3.  **Strict JSON Output:** Your entire response MUST be a single, valid JSON array of objects. Do not include any text, markdown, or explanations outside of the JSON structure.
4.  **JSON Structure:** Each object in the array must have two keys: "question" (a string) and "answer" (a string).

**Request:**
-   Topic: %s
-   Difficulty: %s
-   Number of Questions: %d

**Example JSON Output Format:**
[
    {
        "question": "This is the first question on the topic.",
        "answer": "This is the factually correct answer to the first question."
    },
    {
        "question": "This is the second question on the topic.",
        "answer": "This is the factually correct answer to the second question."
    }
]

Now, generate the response for the provided request.`

const summaryPromptTemplate = `You are an expert at summarizing web content for research purposes.
Given the main topic "%s", provide a concise, one-sentence summary for each of the following web pages.
Use your search tool to access and understand the content of each page.
Your entire response must be a single, valid JSON array of objects. Do not include any text, markdown, or explanations outside of the JSON structure.

**CRITICAL INSTRUCTIONS:**
1.  The summary MUST be a single, informative sentence.
2.  Each object in the array must have two keys: "uri" (string) and "summary" (string).
3.  The "uri" in your JSON output must EXACTLY match the URI provided in the list below.

**Web Pages to Summarize:**
%s

**Example JSON Output:**
[
    {
        "uri": "https://example.com/page1",
        "summary": "This is a one-sentence summary for page1."
    },
    {
        "uri": "https://example.com/page2",
        "summary": "This is a one-sentence summary for page2."
    }
]

Now, generate the response.`

// BuildQAPrompt embeds the request in the question/answer instruction prompt
func BuildQAPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(qaPromptTemplate, req.Topic, req.Difficulty, req.NumQuestions)
}

// BuildSummaryPrompt asks for one summary sentence per source URI
func BuildSummaryPrompt(topic string, sources []models.Source) string {
	uris := make([]string, len(sources))
	for i, s := range sources {
		uris[i] = s.URI
	}
	return fmt.Sprintf(summaryPromptTemplate, topic, strings.Join(uris, "\n"))
}
