package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/aos-loader/internal/store"
	"github.com/DaanHessen/aos-loader/internal/util"
)

// Run boots the settings form and blocks until it exits.
func Run(ctx context.Context, st *store.SettingsStore, cfg util.Config, version string) error {
	m := initialModel(ctx, st, cfg, version)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
