package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"astrolabe/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// stdout carries the protocol.
	logger := log.New(os.Stderr, "astrolabe: ", log.LstdFlags)

	db, svc, err := session(ctx)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	logger.Printf("serving MCP on stdio (version %s)", version)
	server := mcp.NewServer(db, svc, version)
	if err := server.Run(ctx, &sdk.StdioTransport{}); err != nil {
		logger.Printf("server stopped: %v", err)
		return err
	}
	return nil
}
