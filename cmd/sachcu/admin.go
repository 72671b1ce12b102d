package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
)

var (
	adminPostStatus string
	moderateStatus  string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation commands (requires `sachcu admin-login`)",
}

// adminRun wraps withClient for the admin credential slot.
func adminRun(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	return withClient(cmd, domain.RoleAdmin, fn)
}

var adminPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List listings, optionally in one status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			var (
				posts []domain.Post
				err   error
			)
			if adminPostStatus != "" {
				posts, err = a.client.Admin.PostsByStatus(ctx, adminPostStatus)
			} else {
				posts, err = a.client.Admin.Posts(ctx)
			}
			if err != nil {
				return err
			}
			return render(cmd, posts, postTable(posts))
		})
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			users, err := a.client.Admin.Users(ctx)
			if err != nil {
				return err
			}
			return render(cmd, users, userTable(users))
		})
	},
}

var adminReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			reports, err := a.client.Admin.Reports(ctx)
			if err != nil {
				return err
			}
			return render(cmd, reports, func(w io.Writer) error {
				rows := make([][]string, 0, len(reports))
				for _, r := range reports {
					rows = append(rows, []string{strconv.Itoa(r.ReportID), strconv.Itoa(r.PostID), string(r.Status), r.Reason})
				}
				return table(w, []string{"ID", "POST", "STATUS", "REASON"}, rows)
			})
		})
	},
}

var adminReportStatusCmd = &cobra.Command{
	Use:   "report-status REPORT_ID STATUS",
	Short: "Move a report to OPEN, RESOLVED or DISMISSED",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			r, err := a.client.Admin.UpdateReportStatus(ctx, id, domain.ReportStatus(args[1]))
			if err != nil {
				return err
			}
			return render(cmd, r, line("report %d is %s", r.ReportID, r.Status))
		})
	},
}

var adminOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarise posts, users and categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			ov, err := a.client.Admin.Overview(ctx)
			if err != nil {
				return err
			}
			return render(cmd, ov, func(w io.Writer) error {
				byStatus := make(map[domain.PostStatus]int)
				for _, p := range ov.Posts {
					byStatus[p.Status]++
				}
				rows := [][]string{
					{"posts", strconv.Itoa(len(ov.Posts))},
					{"  pending", strconv.Itoa(byStatus[domain.PostPending])},
					{"  approved", strconv.Itoa(byStatus[domain.PostApproved])},
					{"  declined", strconv.Itoa(byStatus[domain.PostDeclined])},
					{"  sold", strconv.Itoa(byStatus[domain.PostSold])},
					{"users", strconv.Itoa(len(ov.Users))},
					{"categories", strconv.Itoa(len(ov.Categories))},
				}
				return table(w, []string{"ITEM", "COUNT"}, rows)
			})
		})
	},
}

var adminModerateCmd = &cobra.Command{
	Use:   "moderate POST_ID...",
	Short: "Set the status of one or more listings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, ok := domain.ParsePostStatus(moderateStatus)
		if !ok {
			return fmt.Errorf("--status must be APPROVED, PENDING, DECLINED or SOLD, got %q", moderateStatus)
		}
		tasks := make([]ports.ModerationTask, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			tasks = append(tasks, ports.ModerationTask{PostID: id, Status: status})
		}

		return adminRun(cmd, func(ctx context.Context, a *app) error {
			results, err := a.client.Admin.ModeratePosts(ctx, tasks)
			if err != nil {
				return err
			}

			type row struct {
				PostID int               `json:"postID"`
				Status domain.PostStatus `json:"status"`
				Error  string            `json:"error,omitempty"`
			}
			out := make([]row, 0, len(results))
			var failed []error
			for _, r := range results {
				rr := row{PostID: r.PostID, Status: r.Status}
				if r.Err != nil {
					rr.Error = r.Err.Error()
					failed = append(failed, r.Err)
				}
				out = append(out, rr)
			}
			if err := render(cmd, out, func(w io.Writer) error {
				rows := make([][]string, 0, len(out))
				for _, r := range out {
					result := "ok"
					if r.Error != "" {
						result = r.Error
					}
					rows = append(rows, []string{strconv.Itoa(r.PostID), string(r.Status), result})
				}
				return table(w, []string{"POST", "STATUS", "RESULT"}, rows)
			}); err != nil {
				return err
			}
			// The first failure picks the exit code.
			if len(failed) > 0 {
				return failed[0]
			}
			return nil
		})
	},
}

var adminUserStatusCmd = &cobra.Command{
	Use:   "user-status USER_ID STATUS",
	Short: "Set an account's status (ACTIVE, SUSPENDED, BANNED, ...)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			u, err := a.client.Admin.UpdateUserStatus(ctx, id, domain.UserStatus(args[1]))
			if err != nil {
				return err
			}
			return render(cmd, u, userLine(u))
		})
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user USER_ID",
	Short: "Delete an account and its listings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			if err := a.client.Admin.DeleteUser(ctx, id); err != nil {
				return err
			}
			return render(cmd, map[string]any{"userID": id, "deleted": true}, line("deleted user %d", id))
		})
	},
}

var adminCategoryCreateCmd = &cobra.Command{
	Use:   "category-create NAME",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			c, err := a.client.Admin.CreateCategory(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd, c, line("created category %d %s", c.CategoryID, c.CategoryName))
		})
	},
}

var adminCategoryUpdateCmd = &cobra.Command{
	Use:   "category-update CATEGORY_ID NAME",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			c, err := a.client.Admin.UpdateCategory(ctx, id, args[1])
			if err != nil {
				return err
			}
			return render(cmd, c, line("category %d is now %s", c.CategoryID, c.CategoryName))
		})
	},
}

var adminCategoryDeleteCmd = &cobra.Command{
	Use:   "category-delete CATEGORY_ID",
	Short: "Delete an unused category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return adminRun(cmd, func(ctx context.Context, a *app) error {
			if err := a.client.Admin.DeleteCategory(ctx, id); err != nil {
				return err
			}
			return render(cmd, map[string]any{"categoryID": id, "deleted": true}, line("deleted category %d", id))
		})
	},
}

func init() {
	adminPostsCmd.Flags().StringVar(&adminPostStatus, "status", "", "only list posts in this status")
	adminModerateCmd.Flags().StringVar(&moderateStatus, "status", "", "new status: APPROVED, PENDING, DECLINED or SOLD")
	_ = adminModerateCmd.MarkFlagRequired("status")

	adminCmd.AddCommand(
		adminPostsCmd, adminUsersCmd, adminReportsCmd, adminReportStatusCmd, adminOverviewCmd,
		adminModerateCmd, adminUserStatusCmd, adminDeleteUserCmd,
		adminCategoryCreateCmd, adminCategoryUpdateCmd, adminCategoryDeleteCmd,
	)
}

func userTable(users []domain.User) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Email, string(u.Status), u.Province})
		}
		return table(w, []string{"ID", "NAME", "EMAIL", "STATUS", "PROVINCE"}, rows)
	}
}

