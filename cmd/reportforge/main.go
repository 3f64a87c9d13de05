package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"reportforge/internal/composer"
	"reportforge/internal/config"
	"reportforge/internal/intelligence"
	"reportforge/internal/render"
	"reportforge/internal/server"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "reportforge",
		Short: "AI-powered document assembly and rendering pipeline",
	}
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")

	generateCmd.Flags().StringVarP(&outPath, "out", "o", "report.pdf", "Output file path")
	generateCmd.Flags().StringVarP(&outFormat, "format", "f", "pdf", "Output format (pdf or txt)")
	generateCmd.Flags().BoolVar(&offline, "offline", false, "Skip AI calls and use deterministic defaults")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}

func loadConfig() *config.Config {
	if configPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			configPath = "config.yaml"
		}
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// initOracle builds the configured oracle, or nil when no API key is set so
// the pipeline runs entirely on deterministic fallbacks.
func initOracle(ctx context.Context, cfg *config.Config) intelligence.Oracle {
	if offline || cfg.AI.APIKey == "" {
		fmt.Println("⚠️  No AI API key configured, generating with deterministic defaults.")
		return nil
	}
	oracle, err := intelligence.NewOracle(ctx, intelligence.OracleOptions{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create oracle: %v", err)
	}
	return oracle
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP document generation server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		oracle := initOracle(ctx, cfg)
		pipeline := composer.NewPipeline(oracle, render.NewPDFRenderer(), cfg.Document.ChunkLimit)
		pipeline.MaxArtifactMB = cfg.Server.MaxFileSizeMB

		srv := server.New(cfg, pipeline)
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

var (
	outPath   string
	outFormat string
	offline   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [sections.json]",
	Short: "Generate a document from a JSON file of sections",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		sections, err := readSections(args[0])
		if err != nil {
			log.Fatalf("Failed to read sections: %v", err)
		}
		fmt.Printf("📄 Loaded %d sections from %s\n", len(sections), args[0])

		var renderer composer.Renderer
		switch strings.ToLower(outFormat) {
		case "pdf":
			renderer = render.NewPDFRenderer()
		case "txt":
			renderer = render.NewTextRenderer()
		default:
			log.Fatalf("Unknown output format: %s", outFormat)
		}

		oracle := initOracle(ctx, cfg)
		pipeline := composer.NewPipeline(oracle, renderer, cfg.Document.ChunkLimit)
		pipeline.MaxArtifactMB = cfg.Server.MaxFileSizeMB

		start := time.Now()
		data, err := pipeline.Generate(ctx, sections)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}

		if err := os.WriteFile(outPath, data, 0644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("🎉 Wrote %s (%d bytes) in %v\n", outPath, len(data), time.Since(start))
	},
}

// readSections accepts either a bare JSON array of sections or an object
// wrapping them under a "sections" key, matching the HTTP request shape.
func readSections(path string) ([]intelligence.Section, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sections []intelligence.Section
	if err := json.Unmarshal(raw, &sections); err == nil {
		return sections, nil
	}

	var wrapper struct {
		Sections []intelligence.Section `json:"sections"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return wrapper.Sections, nil
}
