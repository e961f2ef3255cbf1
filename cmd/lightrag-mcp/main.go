// Package main provides the entry point for the LightRAG MCP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaebz/lightrag-mcp/internal/action"
	"github.com/vaebz/lightrag-mcp/internal/backend"
	"github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
	"github.com/vaebz/lightrag-mcp/internal/server"
)

var (
	host    = flag.String("host", "", "Bind host (overrides MCP_HTTP_HOST)")
	port    = flag.Int("port", 0, "Bind port (overrides MCP_HTTP_PORT)")
	envFile = flag.String("env-file", "", "Load environment variables from this file")
	pretty  = flag.Bool("pretty", false, "Human-readable log output")
	version = flag.Bool("version", false, "Print version and exit")
)

const Version = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("lightrag-mcp %s\n", Version)
		os.Exit(0)
	}

	// .env first so config.Load sees its variables.
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	} else {
		_ = godotenv.Load()
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.HTTPHost = *host
	}
	if *port != 0 {
		cfg.HTTPPort = *port
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel), *pretty, os.Stderr)

	queue := event.NewQueue()
	gateway := backend.New(cfg)
	dispatcher := action.NewDispatcher(cfg, queue, gateway)

	serverCfg := server.DefaultConfig()
	serverCfg.Addr = cfg.Addr()
	srv := server.New(serverCfg, cfg, queue, dispatcher)

	go func() {
		logging.Info().
			Str("addr", cfg.Addr()).
			Str("llmBinding", cfg.LLMBinding).
			Str("llmModel", cfg.LLMModel).
			Msg("LightRAG MCP Server started")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown error")
	}

	logging.Info().Msg("server stopped")
}
