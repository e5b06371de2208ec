// Package tui implements the interactive Huntarr dashboard.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/config"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the dashboard. cfgPath is watched for changes while it
// runs; an empty path disables reloading.
func Run(cfg *config.Config, cfgPath string) error {
	client, err := api.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	var watcher *config.Watcher
	if cfgPath != "" && config.FileExists(cfgPath) {
		watcher, err = config.Watch(cfgPath, config.DefaultDebounce)
		if err != nil {
			log.WithError(err).Warn("Config reloading disabled")
			watcher = nil
		}
	}

	ref := &programRef{}
	model := NewModel(cfg, cfgPath, client, watcher, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	_, err = p.Run()
	ref.Clear()
	if watcher != nil {
		watcher.Stop()
	}
	return err
}
