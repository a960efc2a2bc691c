package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thushan/llmsource/internal/app/setup"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/pkg/eventbus"
)

// Run shows the setup panel until the user quits or ctx is cancelled
func Run(ctx context.Context, panel *setup.Panel, source *domain.Source, bus *eventbus.EventBus[domain.StoreEvent], themeName string) error {
	defer panel.Close()

	var events <-chan domain.StoreEvent
	if bus != nil {
		ch, unsubscribe := bus.Subscribe(ctx)
		defer unsubscribe()
		events = ch
	}

	title := fmt.Sprintf("%s · %s", source.GetDisplayLabel(), source.VendorID)
	model := NewModel(ctx, panel, title, events, themeName)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("setup panel: %w", err)
	}
	return nil
}
