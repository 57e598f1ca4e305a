// Command wellivian-mcp serves the Wellivian MCP server over stdio so
// an LLM client can query workouts, exercise stats, and wearable data.
//
// Two modes:
//   - local: connects straight to Postgres (requires -config)
//   - remote: talks to a running Wellivian server's REST API (-server URL)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bradpignatello/wellivian/internal/config"
	"github.com/bradpignatello/wellivian/internal/mcp"
	"github.com/bradpignatello/wellivian/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	serverURL := flag.String("server", "", "Wellivian server URL (remote mode)")
	userID := flag.Int("user", 1, "user ID to query on behalf of (local mode)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("wellivian-mcp", Version)
		return
	}

	// Logs go to stderr — stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource

	switch {
	case *serverURL != "":
		ds = mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
		log.Info("remote mode", "server", *serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "user", *userID)
	default:
		fmt.Fprintf(os.Stderr, "Usage: wellivian-mcp (-config config.yaml | -server <URL>)\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)

	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	}))
	if err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
