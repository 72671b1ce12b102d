package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var (
	authEmail         string
	authPassword      string
	authPasswordStdin bool

	registerReq domain.RegisterRequest

	logoutAdmin bool
	logoutAll   bool
	whoamiAdmin bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		req := registerReq
		req.Email = authEmail
		req.Password = password
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			res, err := a.client.Auth.Register(ctx, req)
			if err != nil {
				return err
			}
			return render(cmd, res, line("registered %s (id %d); run `sachcu login` to sign in", res.Email, res.UserID))
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as a user and store the credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLogin(cmd, domain.RoleUser)
	},
}

var adminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Sign in as an administrator and store the credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLogin(cmd, domain.RoleAdmin)
	},
}

func runLogin(cmd *cobra.Command, role domain.Role) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	req := domain.LoginRequest{Email: authEmail, Password: password}
	return withClient(cmd, role, func(ctx context.Context, a *app) error {
		login := a.client.Auth.Login
		if role == domain.RoleAdmin {
			login = a.client.Auth.AdminLogin
		}
		res, err := login(ctx, req)
		if err != nil {
			return err
		}
		res.Token = ""
		return render(cmd, res, line("logged in as %s <%s> (%s)", res.Name, res.Email, role))
	})
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored user credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		roles := []domain.Role{domain.RoleUser}
		switch {
		case logoutAll:
			roles = domain.Roles()
		case logoutAdmin:
			roles = []domain.Role{domain.RoleAdmin}
		}
		return withClient(cmd, domain.RoleNone, func(ctx context.Context, a *app) error {
			for _, role := range roles {
				logout := a.client.Auth.LogoutUser
				if role == domain.RoleAdmin {
					logout = a.client.Auth.LogoutAdmin
				}
				if err := logout(ctx); err != nil {
					return err
				}
			}
			return render(cmd, map[string]any{"loggedOut": roles}, line("logged out (%d credential slots cleared)", len(roles)))
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami [user|admin]",
	Short: "Show the stored principal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := domain.RoleUser
		if whoamiAdmin {
			role = domain.RoleAdmin
		}
		if len(args) == 1 {
			r, err := domain.ParseRole(args[0])
			if err != nil || !r.Valid() {
				return fmt.Errorf("role must be user or admin, got %q", args[0])
			}
			role = r
		}
		return withClient(cmd, domain.RoleNone, func(ctx context.Context, a *app) error {
			current := a.client.Auth.CurrentUser
			if role == domain.RoleAdmin {
				current = a.client.Auth.CurrentAdmin
			}
			p, ok, err := current(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return &exitError{code: exitUnauthorized, err: fmt.Errorf("not logged in as %s", role)}
			}
			return render(cmd, p, line("%s <%s> id=%d role=%s", p.Name, p.Email, p.ID(), p.Role))
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd, adminLoginCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "account email")
		c.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
		c.Flags().BoolVar(&authPasswordStdin, "password-stdin", false, "read the password from stdin")
		_ = c.MarkFlagRequired("email")
	}
	f := registerCmd.Flags()
	f.StringVar(&registerReq.Name, "name", "", "display name")
	f.StringVar(&registerReq.Phone, "phone", "", "phone number")
	f.StringVar(&registerReq.Province, "province", "", "province")
	f.StringVar(&registerReq.District, "district", "", "district")
	f.StringVar(&registerReq.Ward, "ward", "", "ward")
	_ = registerCmd.MarkFlagRequired("name")

	logoutCmd.Flags().BoolVar(&logoutAdmin, "admin", false, "drop the admin credential instead")
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "drop both credentials")
	whoamiCmd.Flags().BoolVar(&whoamiAdmin, "admin", false, "show the admin principal")
}

func readPassword(cmd *cobra.Command) (string, error) {
	if authPasswordStdin {
		return readPasswordStdin(cmd.InOrStdin())
	}
	if authPassword != "" {
		return authPassword, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no password provided (use --password, --password-stdin, or run in a terminal)")
	}

	cmd.Print("Password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", err
	}
	if len(pass) == 0 {
		return "", errors.New("password is empty")
	}
	return string(pass), nil
}

func readPasswordStdin(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("password is empty")
	}
	pass := strings.TrimRight(scanner.Text(), "\r\n")
	if pass == "" {
		return "", errors.New("password is empty")
	}
	return pass, nil
}
