package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// createGenerateQATool returns the generate_qa tool definition
func createGenerateQATool(maxQuestions int) mcp.Tool {
	return mcp.NewTool("generate_qa",
		mcp.WithDescription("Generate fact-checked questions and answers on a topic, with cited web sources"),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Subject to generate questions about"),
		),
		mcp.WithString("difficulty",
			mcp.Description("easy, medium or hard (default: medium)"),
			mcp.Enum("easy", "medium", "hard"),
		),
		mcp.WithNumber("num_questions",
			mcp.Description(fmt.Sprintf("Number of questions (default: 5, max: %d)", maxQuestions)),
		),
	)
}

// createListHistoryTool returns the list_history tool definition
func createListHistoryTool() mcp.Tool {
	return mcp.NewTool("list_history",
		mcp.WithDescription("List previously generated Q&A sets, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 20)"),
		),
	)
}

// createGetResultTool returns the get_result tool definition
func createGetResultTool() mcp.Tool {
	return mcp.NewTool("get_result",
		mcp.WithDescription("Retrieve a stored Q&A set by ID"),
		mcp.WithString("result_id",
			mcp.Required(),
			mcp.Description("Result ID (format: qa_{uuid})"),
		),
	)
}
