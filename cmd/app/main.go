package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	"github.com/starford/ansuz/internal/docservice"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/metadata"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// check lints the given files and prints their metadata issues. Exits
// non-zero when any issue is found, so it can gate CI.
func check(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("usage: ansuz check <file>...", 2)
	}

	found := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", path, err), 2)
		}
		doc := metadata.NewDocument(string(data))
		blocks, issues := metadata.Match(doc)
		issues = append(issues, metadata.Validate(blocks)...)
		for _, is := range issues {
			fmt.Printf("%s:%d: %s: %s\n", path, is.Line, is.Kind, is.Message)
		}
		found += len(issues)
	}

	if found > 0 {
		return cli.Exit(fmt.Sprintf("%d issue(s) found", found), 1)
	}
	return nil
}

// mcp starts the MCP server on stdin/stdout for LLM integration.
func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.NewFS(cfg.Workspace.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// Sync so tools see the current workspace state. Log to stderr:
	// stdout belongs to the MCP transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	reg := registry.New(cfg.Templates.Builtin, db)
	svc := docservice.NewService(store, db, reg)
	return mcpserver.New(svc).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "ansuz",
		Usage:  "Metadata analysis service for extended-Markdown document workspaces",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:      "serve",
				Usage:     "Start the HTTP server (default)",
				Action:    serve,
				Flags:     []cli.Flag{configFlag},
				ArgsUsage: " ",
			},
			{
				Name:      "check",
				Usage:     "Lint metadata blocks in the given files",
				Action:    check,
				ArgsUsage: "<file>...",
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: mcp,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
