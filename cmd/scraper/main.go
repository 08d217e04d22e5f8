// Package main provides the storefront snapshot scraper: it crawls the
// rendered product, review and testimonial pages and persists one
// deduplicated JSON snapshot for the reporting layer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"storesnap/internal/browser"
	"storesnap/internal/config"
	"storesnap/internal/logger"
	"storesnap/internal/report"
	"storesnap/internal/snapshot"
)

func main() {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	configFile := flag.String("config", "", "Path to YAML configuration file")
	output := flag.String("output", "", "Snapshot output path (overrides config)")
	baseURL := flag.String("base-url", "", "Storefront base URL (overrides config)")
	headless := flag.Bool("headless", true, "Run the browser headless")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)

	if *output != "" {
		cfg.Scraper.Output.Path = *output
	}

	if *baseURL != "" {
		cfg.Scraper.BaseURL = *baseURL
	}

	cfg.Browser.Headless = *headless

	appLog := logger.NewLogger(cfg.Scraper.Logging.Level)

	fmt.Printf("🔧 Starting browser session...\n")

	session, err := browser.NewSession(cfg.Browser)
	if err != nil {
		log.Fatalf("❌ Failed to start browser session: %v\n", err)
	}
	// The session is released even when a collection phase fails; only
	// the save outcome decides the exit code.
	defer session.Close()

	fmt.Printf("🚀 Crawling %s (target year %d)...\n", cfg.Scraper.BaseURL, cfg.Scraper.TargetYear)

	snap := snapshot.NewBuilder(session, cfg, appLog).Build()

	store := snapshot.NewStore(cfg.Scraper.Output, appLog)
	if err := store.Save(snap); err != nil {
		session.Close()
		log.Fatalf("❌ Failed to save snapshot: %v\n", err)
	}

	fmt.Printf("\n💾 Snapshot saved to %s\n\n", cfg.Scraper.Output.Path)
	fmt.Print(report.Render(snap))
}

func loadConfig(path string) *config.Config {
	if path == "" {
		defaultPath := "configs/scraper.yaml"
		if _, err := os.Stat(defaultPath); err == nil {
			path = defaultPath
		}
	}

	if path == "" {
		fmt.Println("⚙️  No config file found, using built-in defaults")

		return config.DefaultConfig()
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	return cfg
}

func printUsage() {
	fmt.Println("Storefront Snapshot Scraper")
	fmt.Println()
	fmt.Println("Crawls the storefront's product, review and testimonial pages with a")
	fmt.Println("rendered browser and writes one deduplicated JSON snapshot.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  scraper [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  scraper -config configs/scraper.yaml")
	fmt.Println("  scraper -output data/snapshot.json -headless=false")
}
