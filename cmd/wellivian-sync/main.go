// Command wellivian-sync pulls recent daily data from the Oura API and
// pushes it to a Wellivian server. Run it from cron or a timer; already
// finished days are skipped via a local state database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradpignatello/wellivian/internal/oura"
	"github.com/bradpignatello/wellivian/internal/sync"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Wellivian server URL (e.g. https://wellivian.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("WELLIVIAN_API_KEY"), "ingest API key (or WELLIVIAN_API_KEY)")
	ouraToken := flag.String("oura-token", os.Getenv("OURA_TOKEN"), "Oura personal access token (or OURA_TOKEN)")
	days := flag.Int("days", 3, "number of days to sync, ending today")
	stateDir := flag.String("state-dir", "", "state database directory (default ~/.wellivian-sync)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("wellivian-sync", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" || *apiKey == "" || *ouraToken == "" {
		fmt.Fprintf(os.Stderr, "Usage: wellivian-sync -server <URL> -api-key <key> -oura-token <token> [-days N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	*serverURL = strings.TrimRight(*serverURL, "/")

	// Resolve state directory
	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".wellivian-sync")
	}

	state, err := sync.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	wear := oura.NewClient("", *ouraToken, log)
	client := sync.NewClient(*serverURL, *apiKey)

	syncer := sync.NewSyncer(wear, client, state, log)
	if err := syncer.Run(context.Background(), *days); err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}
}
