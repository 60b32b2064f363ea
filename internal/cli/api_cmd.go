package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/client"
	"github.com/zeabis/zeabis/internal/contract"
	"github.com/zeabis/zeabis/internal/grid"
)

// newAPICmd groups the commands that work against a running server instead
// of the local database. The session token is kept in Config.TokenFile.
func newAPICmd(app *App) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Talk to a running zeabis server",
	}
	cmd.PersistentFlags().StringVar(&base, "url", "", "API base URL (default from ZEABIS_API_URL)")

	cmd.AddCommand(
		newAPILoginCmd(app, &base),
		newAPIMeCmd(app, &base),
		newAPILogoutCmd(app, &base),
		newAPIGetCmd(app, &base),
		newAPIBillingCmd(app, &base),
		newAPIInvoicesCmd(app, &base),
		newAPIExportCmd(app, &base),
	)
	return cmd
}

// sessionClient loads the stored token. A 401 later on means the token
// expired, which sessionErr turns into a login hint.
func sessionClient(app *App, base string) (*client.Client, error) {
	token, err := app.tokens().Load()
	if err != nil {
		return nil, err
	}
	return app.apiClient(base, token), nil
}

func sessionErr(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (run `zeabis api login` again)", err)
	}
	return err
}

func newAPILoginCmd(app *App, base *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				if !app.interactive() {
					return errors.New("--email and --password are required")
				}
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Email").Value(&email).Validate(validateEmail),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(required("password")),
				)).WithTheme(huhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			c := app.apiClient(*base, "")
			session, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.tokens().Save(c.Token()); err != nil {
				return err
			}
			writeUser(cmd, session.User)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newAPIMeCmd(app *App, base *string) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := sessionClient(app, *base)
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context())
			if err != nil {
				return sessionErr(err)
			}
			writeUser(cmd, u)
			return nil
		},
	}
}

func newAPILogoutCmd(app *App, base *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := sessionClient(app, *base)
			if errors.Is(err, client.ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}
			// The server keeps no session state; a failed call still logs out.
			if err := c.Logout(cmd.Context()); err != nil {
				app.logger().Warn("logout_call_failed", "error", err.Error())
			}
			if err := app.tokens().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newAPIGetCmd(app *App, base *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> [key=value ...]",
		Short: "GET an API path and print the JSON response",
		Example: `  zeabis api get customers search=acme
  zeabis api get reports/billing year=2024 months=jan,feb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("query argument %q is not key=value", kv)
				}
				q.Add(k, v)
			}
			c, err := sessionClient(app, *base)
			if err != nil {
				return err
			}
			raw, err := c.Raw(cmd.Context(), strings.TrimPrefix(args[0], "/"), q)
			if err != nil {
				return sessionErr(err)
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(raw)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}

// remoteBilling adapts the client to the loader the billing view expects.
func remoteBilling(c *client.Client) billingLoader {
	return func(ctx context.Context, req contract.BillingReportRequest) (*contract.BillingReportResponse, error) {
		key, dir := "", ""
		if req.Sort != nil {
			key, dir = req.Sort.Key, req.Sort.Direction.String()
		}
		resp, err := c.BillingReport(ctx, req.Filters, key, dir)
		return resp, sessionErr(err)
	}
}

func newAPIBillingCmd(app *App, base *string) *cobra.Command {
	var ff filterFlags
	var expand, monthly, plain bool
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Show the billing tracker from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.billingRequest(app.now())
			if err != nil {
				return err
			}
			c, err := sessionClient(app, *base)
			if err != nil {
				return err
			}
			load := remoteBilling(c)
			if app.interactive() && !plain {
				_, err := tea.NewProgram(newBillingView(load, req, monthly), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Fetching billing tracker...")
			}
			resp, err := load(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}
			exp := &grid.Expansion{}
			if expand {
				exp = expandAll(resp.Rows, false)
			}
			writeBilling(cmd.OutOrStdout(), resp, req.Sort, exp, monthly)
			return nil
		},
	}
	ff.bind(cmd.Flags())
	cmd.Flags().BoolVar(&expand, "expand", false, "show the employee breakdown of every project")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "add one hours column per month of the window")
	cmd.Flags().BoolVar(&plain, "plain", false, "print text even in a terminal")
	return cmd
}

func remoteInvoices(c *client.Client) invoiceLoader {
	return func(ctx context.Context, req contract.InvoiceReportRequest) (*contract.InvoiceReportResponse, error) {
		key, dir := "", ""
		if req.Sort != nil {
			key, dir = req.Sort.Key, req.Sort.Direction.String()
		}
		resp, err := c.InvoiceReport(ctx, req.Filters, key, dir)
		return resp, sessionErr(err)
	}
}

func newAPIInvoicesCmd(app *App, base *string) *cobra.Command {
	var ff filterFlags
	var out invoiceOutput
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Show the invoice tracker from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := ff.invoiceRequest(app.now())
			if err != nil {
				return err
			}
			c, err := sessionClient(app, *base)
			if err != nil {
				return err
			}
			return out.run(cmd, app, req, remoteInvoices(c))
		},
	}
	ff.bind(cmd.Flags())
	out.bind(cmd)
	return cmd
}

func newAPIExportCmd(app *App, base *string) *cobra.Command {
	var ff filterFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the billing workbook from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fv, err := ff.values()
			if err != nil {
				return err
			}
			c, err := sessionClient(app, *base)
			if err != nil {
				return err
			}
			data, err := c.BillingWorkbook(cmd.Context(), fv)
			if err != nil {
				return sessionErr(err)
			}
			if out == "" {
				out = fmt.Sprintf("billing-%d.xlsx", fv.YearOr(app.now().Year()))
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	ff.bind(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default billing-<year>.xlsx)")
	return cmd
}
