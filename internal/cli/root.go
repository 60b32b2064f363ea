package cli

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/client"
	"github.com/zeabis/zeabis/internal/config"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/service"
)

// App holds what the commands need: the local services for commands that
// work on the database directly, and the settings for the ones that talk to
// a running API.
type App struct {
	Services service.Services
	Config   config.Config
	Logger   *slog.Logger

	// Now is the reporting clock; nil means time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Interactive
	// commands fall back to plain output when it is nil or false.
	IsInteractive func() bool
	// HTTPClient overrides the transport of the api commands.
	HTTPClient *http.Client
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) tokens() client.TokenStore {
	return client.TokenStore{Path: a.Config.TokenFile}
}

// apiClient targets base, or the configured API URL when base is empty.
func (a *App) apiClient(base, token string) *client.Client {
	opts := []client.Option{client.WithToken(token)}
	if a.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(a.HTTPClient))
	}
	return client.New(domain.CoalesceStr(base, a.Config.APIURL), opts...)
}

// NewRootCmd creates the top-level "zeabis" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "zeabis",
		Short:         "Business operations: projects, billing and invoices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newSeedCmd(app),
		newBillingCmd(app),
		newInvoiceCmd(app),
		newDashboardCmd(app),
		newExportCmd(app),
		newUserCmd(app),
		newAPICmd(app),
	)

	return root
}
