package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/app"
	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/history"
	"github.com/llehouerou/shelf/internal/notify"
	"github.com/llehouerou/shelf/internal/organize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(errmsg.Format(errmsg.OpConfigLoad, err))
		os.Exit(1)
	}

	// Positional args override the configured folders: shelf [source [destination]]
	args := os.Args[1:]
	if len(args) > 0 {
		cfg.SourceFolder = args[0]
	}
	if len(args) > 1 {
		cfg.DestinationFolder = args[1]
	}

	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Open()
		if err != nil {
			// History is best effort; run without it.
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpHistoryOpen, err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	notifier, err := notify.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpNotify, err))
	}

	m := app.New(cfg, organize.New(nil), store, notifier)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
