// Package tui implements the interactive terminal console: an
// authentication flow (login and registration) followed by the record
// browser, where incident management is gated to the admin role.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/service"
	"github.com/secopslab/secwatch/models"
)

// ErrUserQuit reports that the user left the program from the console.
var ErrUserQuit = errors.New("user quit")

// TUI drives the terminal console over the application services.
type TUI struct {
	services  *service.Services
	buildInfo models.AppBuildInfo
}

// New constructs the console over the given services.
func New(services *service.Services, buildInfo models.AppBuildInfo, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo}, nil
}

// Run executes the console until the user quits: the authentication flow,
// then the record browser, looping back on logout.
func (t *TUI) Run(ctx context.Context) error {
	for {
		username, role, err := t.loginFlow(ctx)
		if err != nil {
			if errors.Is(err, ErrUserQuit) {
				return nil
			}
			return err
		}

		logout, err := t.mainLoop(ctx, username, role)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		clearSession()
	}
}

// loginFlow runs the menu/login/register pages until a login succeeds or
// the user quits.
func (t *TUI) loginFlow(ctx context.Context) (username string, role models.Role, err error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return "", "", runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return "", "", tea.ErrProgramKilled
	}
	if result.quitByUser {
		return "", "", ErrUserQuit
	}

	return result.resultUsername, result.resultRole, nil
}

// mainLoop runs the record browser for the authenticated session.
func (t *TUI) mainLoop(ctx context.Context, username string, role models.Role) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, username, role)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
