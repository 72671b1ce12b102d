package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var (
	profileReq  domain.UpdateUserRequest
	passwordReq domain.ChangePasswordRequest
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Read and edit your profile",
}

var usersGetCmd = &cobra.Command{
	Use:   "get [USER_ID]",
	Short: "Show a profile (defaults to your own)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			id, err := userID(ctx, a, args)
			if err != nil {
				return err
			}
			u, err := a.client.Users.Get(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, u, userLine(u))
		})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update [USER_ID]",
	Short: "Edit your profile; empty flags are left unchanged",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			id, err := userID(ctx, a, args)
			if err != nil {
				return err
			}
			u, err := a.client.Users.UpdateProfile(ctx, id, profileReq)
			if err != nil {
				return err
			}
			return render(cmd, u, userLine(u))
		})
	},
}

var usersPasswordCmd = &cobra.Command{
	Use:   "password [USER_ID]",
	Short: "Change your password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			id, err := userID(ctx, a, args)
			if err != nil {
				return err
			}
			msg, err := a.client.Users.ChangePassword(ctx, id, passwordReq)
			if err != nil {
				return err
			}
			return render(cmd, msg, line("%s", msg.Message))
		})
	},
}

func init() {
	f := usersUpdateCmd.Flags()
	f.StringVar(&profileReq.Name, "name", "", "display name")
	f.StringVar(&profileReq.Phone, "phone", "", "phone number")
	f.StringVar(&profileReq.Province, "province", "", "province")
	f.StringVar(&profileReq.District, "district", "", "district")
	f.StringVar(&profileReq.Ward, "ward", "", "ward")

	p := usersPasswordCmd.Flags()
	p.StringVar(&passwordReq.OldPassword, "old", "", "current password")
	p.StringVar(&passwordReq.NewPassword, "new", "", "new password")

	usersCmd.AddCommand(usersGetCmd, usersUpdateCmd, usersPasswordCmd)
}

// userID resolves the optional USER_ID argument, falling back to the stored
// user principal.
func userID(ctx context.Context, a *app, args []string) (int, error) {
	if len(args) == 1 {
		return parseID(args[0])
	}
	p, ok, err := a.client.Auth.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	if !ok || p.ID() == 0 {
		return 0, &exitError{code: exitUnauthorized, err: fmt.Errorf("not logged in"), hint: "run `sachcu login`"}
	}
	return p.ID(), nil
}

func userLine(u *domain.User) func(io.Writer) error {
	return line("%d\t%s <%s>\t%s\t%s, %s", u.ID, u.Name, u.Email, u.Status, u.District, u.Province)
}
