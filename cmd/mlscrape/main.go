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
	"github.com/pevans/foxscrape/article"
	"github.com/pevans/foxscrape/config"
	"github.com/pevans/foxscrape/fetch"
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

func main() {
	_ = godotenv.Load()

	// Unset flags (empty or -1) leave the config file value in place
	configPath := flag.String("config", getEnv("FOXSCRAPE_CONFIG", ""), "Path to config file (FOXSCRAPE_CONFIG, default ~/.foxscrape/config.yaml)")
	baseURL := flag.String("base-url", getEnv("FOXSCRAPE_ARTICLES_BASE_URL", ""), "Article URL prefix (FOXSCRAPE_ARTICLES_BASE_URL)")
	first := flag.Int("first", getEnvInt("FOXSCRAPE_ARTICLES_FIRST", -1), "First article number (FOXSCRAPE_ARTICLES_FIRST)")
	last := flag.Int("last", getEnvInt("FOXSCRAPE_ARTICLES_LAST", -1), "Last article number, inclusive (FOXSCRAPE_ARTICLES_LAST)")
	outDir := flag.String("out", getEnv("FOXSCRAPE_ARTICLES_DIR", ""), "Output directory (FOXSCRAPE_ARTICLES_DIR)")
	userAgent := flag.String("user-agent", getEnv("FOXSCRAPE_USER_AGENT", ""), "User-Agent header, or \"random\" (FOXSCRAPE_USER_AGENT)")
	timeout := flag.Duration("timeout", -1, "HTTP request timeout, 0 for none")

	flag.Parse()

	cfg, err := config.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *baseURL != "" {
		cfg.Articles.BaseURL = *baseURL
	}
	if *first >= 0 {
		cfg.Articles.First = *first
	}
	if *last >= 0 {
		cfg.Articles.Last = *last
	}
	if *outDir != "" {
		cfg.Articles.OutDir = *outDir
	}
	if *userAgent != "" {
		cfg.HTTP.UserAgent = *userAgent
	}
	if *timeout >= 0 {
		cfg.HTTP.Timeout = *timeout
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(cfg.FetchOptions(cfg.Articles.Delay))
	scraper := article.NewScraper(client, cfg.ArticleConfig())

	log.Printf("Scraping articles %d..%d into %s", cfg.Articles.First, cfg.Articles.Last, cfg.Articles.OutDir)
	start := time.Now()
	summary, err := scraper.Run(ctx)
	if summary != nil {
		printSummary(summary, time.Since(start))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: scraping stopped: %v\n", err)
		stop()
		os.Exit(1)
	}

	fmt.Println("Scraping completed.")
}

// printSummary renders one row per article number.
func printSummary(summary *article.Summary, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Title", "Images", "Result"})

	for _, r := range summary.Results {
		status := r.Path
		if r.Err != nil {
			status = "skipped: " + r.Err.Error()
		}
		t.AppendRow(table.Row{r.Number, r.Title, r.Images, status})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("Saved %d", summary.Saved), fmt.Sprintf("Skipped %d", summary.Skipped), elapsed.Round(time.Millisecond)})
	t.Render()
}
