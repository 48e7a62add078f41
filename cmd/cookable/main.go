// Package main is the Cookable CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cookable/cookable/internal/cli"
	"github.com/cookable/cookable/internal/config"
	"github.com/cookable/cookable/internal/keyword"
	"github.com/cookable/cookable/internal/models"
	"github.com/cookable/cookable/internal/recommend"
	"github.com/cookable/cookable/internal/server"
	"github.com/cookable/cookable/internal/store"
	"github.com/cookable/cookable/internal/watcher"
	"github.com/cookable/cookable/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/cookable/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "cookable server" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "recommend":
		runRecommend()
	case "recipes":
		runRecipes()
	case "clusters":
		runClusters()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("cookable version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (dataset reloads, watcher events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	engine := recommend.NewEngine(nil)
	srv := server.NewServer(engine, nil, cfg, logger)
	if err := srv.Reload(); err != nil {
		logger.Fatal("Failed to build model", zap.Error(err))
	}
	model := engine.Current()
	logger.Info("model built",
		zap.String("dataset", cfg.Storage.DatasetPath),
		zap.Int("recipes", len(model.Recipes())),
		zap.Int("vocabulary", len(model.Vocabulary())),
		zap.Int("clusters", model.NumClusters()),
	)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.New(cfg.Storage.DatasetPath, func() {
			if err := srv.Reload(); err != nil {
				logger.Warn("dataset reload failed", zap.Error(err))
			}
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printRecommendUsage prints recommend subcommand usage.
func printRecommendUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: cookable recommend [flags] <ingredient> [ingredient...]\n\n")
	fmt.Fprintf(fs.Output(), "Ingredients are the remaining arguments; each may itself be a comma-separated list.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  cookable recommend eggs flour milk
  cookable recommend "chicken, rice" onion
  cookable recommend --max-missing 0 eggs flour milk   # only fully cookable recipes
  cookable recommend --top 10 --output json eggs flour
`)
}

// recommendArgsReorder moves any flags (and their values) that appear after the
// ingredients to the front of the slice so that flag.Parse() sees them. Go's
// flag package stops at the first non-flag argument.
func recommendArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct dataset mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = build the model locally when server is not running)")
	maxMissing := fs.Int("max-missing", models.DefaultMaxMissing, "maximum missing ingredients a recipe may have")
	topN := fs.Int("top", 5, "number of recommendations")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printRecommendUsage(fs) }
	_ = fs.Parse(recommendArgsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		printRecommendUsage(fs)
		os.Exit(1)
	}
	ingredients := models.SplitIngredients(strings.Join(fs.Args(), ","))

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	request := &models.MatchRequest{
		UserIngredients: ingredients,
		MaxMissing:      maxMissing,
		TopN:            *topN,
	}

	var response *models.MatchResponse
	if *serverURL != "" {
		// Use HTTP API when server is running (avoids rebuilding the model).
		res, err := recommendViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
			os.Exit(1)
		}
		response = res
	} else {
		model, err := buildLocalModel(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		res, err := model.Match(request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
			os.Exit(1)
		}
		response = res
	}

	if err := cli.WriteMatchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// buildLocalModel loads the dataset from config and builds a clustered model,
// for commands that run without a server.
func buildLocalModel(configPath string) (*recommend.Model, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}
	recipes, err := store.Load(cfg.Storage.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to load dataset: %w", err)
	}
	model, err := recommend.Build(recipes, cfg.Clustering, &cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("Failed to build model: %w", err)
	}
	return model, nil
}

func recommendViaHTTP(serverURL string, request *models.MatchRequest) (*models.MatchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runRecipes() {
	fs := flag.NewFlagSet("recipes", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct dataset mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = search a locally built index)")
	limit := fs.Int("limit", 10, "number of results")
	_ = fs.Parse(recommendArgsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: cookable recipes [flags] <query>")
		os.Exit(1)
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Println("Usage: cookable recipes [flags] <query>")
		os.Exit(1)
	}

	type hit struct {
		Name  string
		Score float64
	}
	var hits []hit
	if *serverURL != "" {
		u := fmt.Sprintf("%s/api/v1/recipes/search?q=%s&limit=%d", *serverURL, url.QueryEscape(query), *limit)
		resp, err := http.Get(u)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Search failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Results []*models.RecipeHit `json:"results"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, r := range out.Results {
			hits = append(hits, hit{Name: r.Recipe.Name, Score: r.Score})
		}
	} else {
		model, err := buildLocalModel(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		index, err := keyword.NewIndex(model.Recipes())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build index: %v\n", err)
			os.Exit(1)
		}
		defer index.Close()
		found, err := index.Search(query, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		for _, h := range found {
			hits = append(hits, hit{Name: h.Name, Score: h.Score})
		}
	}

	if len(hits) == 0 {
		fmt.Println("No recipes found")
		return
	}
	for _, h := range hits {
		fmt.Printf("%.4f  %s\n", h.Score, h.Name)
	}
}

func runClusters() {
	fs := flag.NewFlagSet("clusters", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct dataset mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = build the model locally)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format := cli.OutputText
	if *outputFormat == "json" {
		format = cli.OutputJSON
	}

	var summaries []*models.ClusterSummary
	if *serverURL != "" {
		resp, err := http.Get(*serverURL + "/api/v1/clusters")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Clusters failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Clusters []*models.ClusterSummary `json:"clusters"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
		summaries = out.Clusters
	} else {
		model, err := buildLocalModel(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		summaries = model.ClusterSummaries()
	}

	if err := cli.WriteClusterSummaries(os.Stdout, summaries, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dbPath := fs.String("db", "", "destination SQLite path (default: storage.database_path from config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: cookable import [flags] <dataset.csv|dataset.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	dest := *dbPath
	if dest == "" {
		dest = cfg.Storage.DatabasePath
	}

	recipes, err := store.Load(path)
	if err != nil {
		fmt.Printf("Failed to load dataset: %v\n", err)
		os.Exit(1)
	}
	db, err := store.OpenSQLite(dest)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PutAll(recipes); err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	total, err := db.Count()
	if err != nil {
		fmt.Printf("Count failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d recipe(s) from %s into %s (%d total)\n", len(recipes), path, dest, total)
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Recipes        int                    `json:"recipes"`
	VocabularySize int                    `json:"vocabulary_size"`
	NClusters      int                    `json:"n_clusters"`
	Clustered      bool                   `json:"clustered"`
	BuiltAt        time.Time              `json:"built_at"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct dataset mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = build the model locally)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		model, err := buildLocalModel(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Recipes:        len(model.Recipes()),
			VocabularySize: len(model.Vocabulary()),
			NClusters:      model.NumClusters(),
			Clustered:      model.Clustered(),
			BuiltAt:        model.BuiltAt(),
			Config: map[string]interface{}{
				"dataset_path": cfg.Storage.DatasetPath,
				"random_seed":  cfg.Clustering.RandomSeed,
				"n_init":       cfg.Clustering.NInit,
				"max_iter":     cfg.Clustering.MaxIter,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("recipes:           %d   # recipes in the current model\n", status.Recipes)
		fmt.Printf("vocabulary_size:   %d   # distinct ingredients\n", status.VocabularySize)
		fmt.Printf("n_clusters:        %d\n", status.NClusters)
		fmt.Printf("clustered:         %t\n", status.Clustered)
		fmt.Printf("built_at:          %s\n", status.BuiltAt.Format(time.RFC3339))
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"dataset_path", "random_seed", "n_init", "max_iter"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-18s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`cookable - Recipe recommendations from what is in your kitchen

Usage:
  cookable server [flags]                    Start the HTTP server
  cookable recommend [flags] <ingredients>   Recommend recipes for your ingredients
  cookable recipes [flags] <query>           Search recipes by keyword
  cookable clusters [flags]                  Show recipe cluster summaries
  cookable import [flags] <dataset>          Import a CSV/XLSX dataset into SQLite
  cookable status [flags]                    Show model/dataset status
  cookable version                           Show version
  cookable help                              Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/cookable/config.yaml)
  --debug            Enable debug logging (dataset reloads, watcher events, etc.)

Recommend Flags:
  --config string       Config file path (for direct dataset mode)
  --server string       Server URL (default: http://localhost:8080). Use empty (--server "") to build the model locally.
  --max-missing int     Maximum missing ingredients a recipe may have (default: 2)
  --top int             Number of recommendations (default: 5)
  --output string       Output format: text or json (default: text)

Recipes Flags:
  --config string    Config file path (for direct dataset mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to search a locally built index.
  --limit int        Number of results (default: 10)

Clusters Flags:
  --config string    Config file path (for direct dataset mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to build the model locally.
  --output string    Output format: text or json (default: text)

Import Flags:
  --config string    Config file path
  --db string        Destination SQLite path (default: storage.database_path from config)

Status Flags:
  --config string    Config file path (for direct dataset mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to build the model locally.
  --output string    Output format: text or json (default: text)

Examples:
  cookable server
  cookable recommend eggs flour milk
  cookable recommend --max-missing 0 "chicken, rice"
  cookable recommend --output json eggs flour   # structured JSON for other apps
  cookable recipes chicken
  cookable import data/sample_recipes.xlsx
  cookable clusters
  cookable status --output json`)
}
