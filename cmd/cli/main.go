package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aguxez/mealfinder/agent"
	"github.com/aguxez/mealfinder/config"
	"github.com/aguxez/mealfinder/logger"
	"github.com/aguxez/mealfinder/mealdb"
	"github.com/aguxez/mealfinder/screen"
)

const defaultLogFile = "mealfinder.log"

func main() {
	configPath := flag.String("config", "mealfinder.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Anything written to the terminal would corrupt the alternate screen.
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	log, err := logger.Initialize(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	client := mealdb.NewClient(cfg.API.BaseURL,
		mealdb.WithTimeout(cfg.API.Timeout),
		mealdb.WithLogger(log.Named("mealdb")),
	)

	var opts []screen.Option
	notes, err := agent.NewFromConfig(cfg.Notes, cfg.NotesToken(), log.Named("agent"))
	if err != nil {
		log.Warn("kitchen notes unavailable", zap.Error(err))
	}
	if notes != nil {
		opts = append(opts, screen.WithNotes(notes, cfg.UI.NotesStyle))
	}

	p := tea.NewProgram(screen.New(client, opts...), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
