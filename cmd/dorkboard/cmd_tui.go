package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dorkboard/internal/adapter/markup"
	"dorkboard/internal/adapter/tui/dashboard"
	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/infra/logger"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [target]",
		Short: "Run the terminal dashboard",
		Long: `Opens the terminal dashboard. An optional target is rendered on start.

Keys: Enter render, Tab/Shift+Tab switch tabs, 1-9 jump, / edit target,
Esc leave the input, Ctrl+R clear, q or Ctrl+C quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.TUI.ASCIISymbols {
				theme.SetASCII(true)
			}

			deps := dashboard.DashboardDeps{
				Catalog:  a.catalog,
				Renderer: a.renderer,
				Plain:    markup.New().Plain,
				Logger:   logger.Component(a.log, "tui"),
				ASCII:    a.cfg.TUI.ASCIISymbols,
			}
			if len(args) == 1 {
				deps.Target = args[0]
			}

			model := dashboard.NewDashboardModel(ctx, deps)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
