package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/cli/formatter"
	"github.com/zeabis/zeabis/internal/domain"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserRegisterCmd(app), newUserRoleCmd(app))
	return cmd
}

func newUserRegisterCmd(app *App) *cobra.Command {
	var reg domain.Registration
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (prompts for missing fields in a terminal)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if missingRegistration(reg) {
				if !app.interactive() {
					return domain.Invalid("--email, --password, --first-name and --last-name are required")
				}
				if err := registerForm(&reg).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						return nil
					}
					return err
				}
			}

			ctx := cmd.Context()
			session, err := app.Services.Auth.Register(ctx, reg)
			if err != nil {
				return err
			}
			user := session.User
			if role != "" {
				if user, err = app.Services.Auth.AssignRole(ctx, user.Email, domain.UserRole(role)); err != nil {
					return err
				}
			}
			writeUser(cmd, user)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&role, "role", "", "role to assign instead of Team Member")
	return cmd
}

func newUserRoleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "role <email> <role>",
		Short: "Replace a user's role",
		Long: fmt.Sprintf(`Replace a user's active role. Roles: %s.

The new role applies from the user's next request; existing tokens stay valid.`, strings.Join(roleNames(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Services.Auth.AssignRole(cmd.Context(), args[0], domain.UserRole(args[1]))
			if err != nil {
				return err
			}
			writeUser(cmd, user)
			return nil
		},
	}
}

func writeUser(cmd *cobra.Command, u *domain.User) {
	role := string(u.Role)
	if role == "" {
		role = "no role"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s\n",
		formatter.StyleGreen.Render("✔"), formatter.Bold(u.FullName()), u.Email, formatter.StylePurple.Render(role))
}

func missingRegistration(r domain.Registration) bool {
	return r.Email == "" || r.Password == "" || r.FirstName == "" || r.LastName == ""
}

func roleNames() []string {
	return []string{
		string(domain.RoleAdmin), string(domain.RoleDeliveryManager), string(domain.RoleProjectManager),
		string(domain.RoleFinanceManager), string(domain.RoleAccountManager), string(domain.RoleTeamMember),
	}
}

// registerForm collects the registration fields that flags left empty.
func registerForm(reg *domain.Registration) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&reg.Email).Validate(validateEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&reg.Password).Validate(validatePassword),
			huh.NewInput().Title("First name").Value(&reg.FirstName).Validate(required("first name")),
			huh.NewInput().Title("Last name").Value(&reg.LastName).Validate(required("last name")),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return errors.New("at least 8 characters")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
