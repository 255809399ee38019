package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/agent"
	"github.com/aguxez/mealfinder/api"
	"github.com/aguxez/mealfinder/config"
	"github.com/aguxez/mealfinder/filewatch"
	"github.com/aguxez/mealfinder/logger"
	"github.com/aguxez/mealfinder/mealdb"
	"github.com/aguxez/mealfinder/models"
)

func main() {
	configPath := flag.String("config", "mealfinder.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Initialize(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// Current meal served by /meal and read by /notes
	sm := &models.StateManager{}

	client := mealdb.NewClient(cfg.API.BaseURL,
		mealdb.WithTimeout(cfg.API.Timeout),
		mealdb.WithLogger(log.Named("mealdb")),
	)

	// Setup kitchen notes agent, if configured
	var notes api.NotesWriter
	notesAgent, err := agent.NewFromConfig(cfg.Notes, cfg.NotesToken(), log.Named("agent"))
	if err != nil {
		logger.Warn("kitchen notes unavailable", zap.Error(err))
	}
	if notesAgent != nil {
		notes = notesAgent
	}

	// Reload log level and API root when the config file changes
	fw, err := filewatch.NewConfigWatcher(*configPath, func(next *config.Config) {
		if err := logger.SetLevel(next.Logging.Level); err != nil {
			logger.Warn("ignoring log level", zap.Error(err))
		}
		if next.API.BaseURL != client.BaseURL() {
			client.SetBaseURL(next.API.BaseURL)
			logger.Info("api base url changed", zap.String("base_url", next.API.BaseURL))
		}
	}, log.Named("filewatch"))
	if err != nil {
		logger.Warn("config reload disabled", zap.Error(err))
	} else {
		defer fw.Close()
		go fw.Watch()
	}

	mux := http.NewServeMux()
	api.NewHandler(client, notes, sm, log.Named("api")).Register(mux)

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logger.Error("server stopped", zap.Error(err))
		logger.Close()
		os.Exit(1)
	}
}
