package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/pevans/foxscrape/config"
	"github.com/pevans/foxscrape/export"
	"github.com/pevans/foxscrape/fetch"
	"github.com/pevans/foxscrape/forum"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an int from environment variable or returns default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration parses a duration from environment variable or returns default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	// Unset flags (empty or -1) leave the config file value in place
	configPath := flag.String("config", getEnv("FOXSCRAPE_CONFIG", ""), "Path to config file (FOXSCRAPE_CONFIG, default ~/.foxscrape/config.yaml)")
	startURL := flag.String("url", getEnv("FOXSCRAPE_FORUM_URL", ""), "Forum listing URL (FOXSCRAPE_FORUM_URL)")
	maxPages := flag.Int("max-pages", getEnvInt("FOXSCRAPE_MAX_PAGES", -1), "Maximum listing pages, 0 for all (FOXSCRAPE_MAX_PAGES)")
	maxThreads := flag.Int("max-threads", getEnvInt("FOXSCRAPE_MAX_THREADS", -1), "Maximum threads to follow, 0 for all (FOXSCRAPE_MAX_THREADS)")
	delay := flag.Duration("delay", getEnvDuration("FOXSCRAPE_DELAY", -1), "Delay between requests (FOXSCRAPE_DELAY)")
	jsonPath := flag.String("json", getEnv("FOXSCRAPE_JSON", ""), "JSON output path (FOXSCRAPE_JSON)")
	csvPath := flag.String("csv", getEnv("FOXSCRAPE_CSV", ""), "CSV output path (FOXSCRAPE_CSV)")
	sqlitePath := flag.String("sqlite", getEnv("FOXSCRAPE_SQLITE", ""), "SQLite output path, off when empty (FOXSCRAPE_SQLITE)")
	userAgent := flag.String("user-agent", getEnv("FOXSCRAPE_USER_AGENT", ""), "User-Agent header, or \"random\" (FOXSCRAPE_USER_AGENT)")

	flag.Parse()

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *startURL != "" {
		cfg.Forum.StartURL = *startURL
	}
	if *maxPages >= 0 {
		cfg.Forum.Listing.MaxPages = *maxPages
	}
	if *maxThreads >= 0 {
		cfg.Forum.MaxThreads = *maxThreads
	}
	if *delay >= 0 {
		cfg.Forum.Delay = *delay
	}
	if *jsonPath != "" {
		cfg.Forum.JSONPath = *jsonPath
	}
	if *csvPath != "" {
		cfg.Forum.CSVPath = *csvPath
	}
	if *sqlitePath != "" {
		cfg.Forum.SQLitePath = *sqlitePath
	}
	if *userAgent != "" {
		cfg.HTTP.UserAgent = *userAgent
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.FetchOptions(cfg.Forum.Delay))
	scraper := forum.NewScraper(client, cfg.ForumConfig())

	start := time.Now()
	result, err := scraper.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: scraping stopped: %v\n", err)
		stop()
		os.Exit(1)
	}

	if err := export.WriteJSON(cfg.Forum.JSONPath, result.Records); err != nil {
		log.Fatalf("Failed to export JSON: %v", err)
	}
	fmt.Printf("Data exported to %s\n", cfg.Forum.JSONPath)

	if err := export.WriteCSV(cfg.Forum.CSVPath, result.Records); err != nil {
		log.Fatalf("Failed to export CSV: %v", err)
	}
	fmt.Printf("Data exported to %s\n", cfg.Forum.CSVPath)

	if cfg.Forum.SQLitePath != "" {
		if err := export.WriteSQLite(cfg.Forum.SQLitePath, result.Records); err != nil {
			log.Fatalf("Failed to export SQLite: %v", err)
		}
		fmt.Printf("Data exported to %s\n", cfg.Forum.SQLitePath)
	}

	printSummary(result, time.Since(start))
}

// printSummary renders one row per collected thread.
func printSummary(result *forum.Result, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
	})
	t.AppendHeader(table.Row{"#", "Title", "Author", "Posts"})

	posts := 0
	for i, record := range result.Records {
		t.AppendRow(table.Row{i + 1, record.Title, record.Author, len(record.Replies)})
		posts += len(record.Replies)
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("Listed %d, skipped %d", result.Listed, result.Failed),
		elapsed.Round(time.Millisecond),
		posts,
	})
	t.Render()
}
