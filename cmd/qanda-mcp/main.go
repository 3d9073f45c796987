package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/qanda/internal/app"
	"github.com/ternarybob/qanda/internal/common"
)

func main() {
	configPath := os.Getenv("QANDA_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("qanda.toml"); err == nil {
			configPath = "qanda.toml"
		}
	}

	config, err := common.LoadFromFiles(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so log to file only
	config.Logging.Output = []string{"file"}
	config.WebSocket.Enabled = false
	logger := common.InitLogger(config)

	application, err := app.New(context.Background(), config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	mcpServer := server.NewMCPServer(
		"qanda",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createGenerateQATool(config.Generation.MaxQuestions), handleGenerateQA(application.GenerationService, logger))
	mcpServer.AddTool(createListHistoryTool(), handleListHistory(application.ResultStorage, logger))
	mcpServer.AddTool(createGetResultTool(), handleGetResult(application.ResultStorage, logger))

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error().Err(err).Msg("MCP server failed")
	}
}
