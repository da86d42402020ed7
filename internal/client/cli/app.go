// Package cli implements the interactive terminal client for userhub.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dkhristov/userhub/internal/client/client"
	"github.com/dkhristov/userhub/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *client.APIClient
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	api := client.NewAPIClient(c.ServerBaseURL, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

// getStatus renders the prompt suffix, e.g. "(alice)" when logged in.
func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to userhub CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server %s is not reachable\n", a.config.ServerBaseURL)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
