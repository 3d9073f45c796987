package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	result := textResult(text)
	result.IsError = true
	return result
}

// handleGenerateQA implements the generate_qa tool
func handleGenerateQA(generation interfaces.GenerationService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		topic, err := request.RequireString("topic")
		if err != nil || topic == "" {
			return errorResult("Error: topic parameter is required"), nil
		}

		difficulty, err := models.ParseDifficulty(request.GetString("difficulty", ""))
		if err != nil {
			return errorResult("Error: difficulty must be one of easy, medium, hard"), nil
		}

		result, err := generation.Generate(ctx, models.GenerationRequest{
			Topic:        topic,
			Difficulty:   difficulty,
			NumQuestions: request.GetInt("num_questions", models.DefaultNumQuestions),
		})
		if err != nil {
			var validationErr *models.ValidationError
			switch {
			case errors.As(err, &validationErr):
				return errorResult("Error: " + validationErr.Message), nil
			case errors.Is(err, models.ErrBusy):
				return errorResult("Error: a generation request is already in progress"), nil
			}
			logger.Error().Err(err).Str("topic", topic).Msg("generate_qa failed")
			return errorResult(models.UserFacingGenerationError), nil
		}

		return textResult(formatResult(result)), nil
	}
}

// handleListHistory implements the list_history tool
func handleListHistory(storage interfaces.ResultStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		if limit <= 0 || limit > 200 {
			limit = 20
		}

		results, err := storage.List(ctx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("list_history failed")
			return errorResult(fmt.Sprintf("Failed to list history: %v", err)), nil
		}

		return textResult(formatHistory(results)), nil
	}
}

// handleGetResult implements the get_result tool
func handleGetResult(storage interfaces.ResultStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("result_id")
		if err != nil || id == "" {
			return errorResult("Error: result_id parameter is required"), nil
		}

		result, err := storage.Get(ctx, id)
		if err != nil {
			if !errors.Is(err, models.ErrResultNotFound) {
				logger.Error().Err(err).Str("result_id", id).Msg("get_result failed")
			}
			return errorResult(fmt.Sprintf("Result not found: %s", id)), nil
		}

		return textResult(formatResult(result)), nil
	}
}
