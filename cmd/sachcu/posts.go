package main

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var (
	createReq domain.CreatePostRequest

	updTitle, updAuthor, updCondition, updDescription string
	updImage, updContact, updProvince, updDistrict    string
	updPrice                                          float64
	updCategory                                       int
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage your listings",
}

var postsGetCmd = &cobra.Command{
	Use:   "get POST_ID",
	Short: "Show one listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			post, err := a.client.Posts.Get(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, post, bookDetail(post))
		})
	},
}

var postsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your listings in every status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			posts, err := a.client.Posts.Mine(ctx)
			if err != nil {
				return err
			}
			return render(cmd, posts, postTable(posts))
		})
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a listing for review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			post, err := a.client.Posts.Create(ctx, createReq)
			if err != nil {
				return err
			}
			return render(cmd, post, line("created post %d (%s)", post.PostID, post.Status))
		})
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update POST_ID",
	Short: "Edit a listing; only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		req := updateRequest(cmd)
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			post, err := a.client.Posts.Update(ctx, id, req)
			if err != nil {
				return err
			}
			return render(cmd, post, line("updated post %d (%s)", post.PostID, post.Status))
		})
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete POST_ID",
	Short: "Delete a listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			if err := a.client.Posts.Delete(ctx, id); err != nil {
				return err
			}
			return render(cmd, map[string]any{"postID": id, "deleted": true}, line("deleted post %d", id))
		})
	},
}

var postsSoldCmd = &cobra.Command{
	Use:   "sold POST_ID",
	Short: "Mark a listing as sold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			post, err := a.client.Posts.MarkSold(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, post, line("post %d is %s", post.PostID, post.Status))
		})
	},
}

func init() {
	f := postsCreateCmd.Flags()
	f.StringVar(&createReq.Title, "title", "", "book title")
	f.StringVar(&createReq.Author, "author", "", "book author")
	f.StringVar(&createReq.BookCondition, "condition", "", "book condition")
	f.Float64Var(&createReq.Price, "price", 0, "asking price")
	f.StringVar(&createReq.PostDescription, "description", "", "listing description")
	f.StringVar(&createReq.Image, "image", "", "image file name from `images upload`")
	f.StringVar(&createReq.ContactInfo, "contact", "", "contact info shown to logged-in buyers")
	f.IntVar(&createReq.CategoryID, "category", 0, "category ID")
	f.StringVar(&createReq.Province, "province", "", "province (defaults to your profile)")
	f.StringVar(&createReq.District, "district", "", "district (defaults to your profile)")

	u := postsUpdateCmd.Flags()
	u.StringVar(&updTitle, "title", "", "book title")
	u.StringVar(&updAuthor, "author", "", "book author")
	u.StringVar(&updCondition, "condition", "", "book condition")
	u.Float64Var(&updPrice, "price", 0, "asking price")
	u.StringVar(&updDescription, "description", "", "listing description")
	u.StringVar(&updImage, "image", "", "image file name")
	u.StringVar(&updContact, "contact", "", "contact info")
	u.IntVar(&updCategory, "category", 0, "category ID")
	u.StringVar(&updProvince, "province", "", "province")
	u.StringVar(&updDistrict, "district", "", "district")

	postsCmd.AddCommand(postsGetCmd, postsMineCmd, postsCreateCmd, postsUpdateCmd, postsDeleteCmd, postsSoldCmd)
}

// updateRequest includes only the flags the user set.
func updateRequest(cmd *cobra.Command) domain.UpdatePostRequest {
	var req domain.UpdatePostRequest
	changed := cmd.Flags().Changed
	str := func(name string, v string) *string {
		if !changed(name) {
			return nil
		}
		return &v
	}
	req.Title = str("title", updTitle)
	req.Author = str("author", updAuthor)
	req.BookCondition = str("condition", updCondition)
	req.PostDescription = str("description", updDescription)
	req.Image = str("image", updImage)
	req.ContactInfo = str("contact", updContact)
	req.Province = str("province", updProvince)
	req.District = str("district", updDistrict)
	if changed("price") {
		p := updPrice
		req.Price = &p
	}
	if changed("category") {
		c := updCategory
		req.CategoryID = &c
	}
	return req
}

func postTable(posts []domain.Post) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := make([][]string, 0, len(posts))
		for _, p := range posts {
			rows = append(rows, []string{
				strconv.Itoa(p.PostID), p.Title, p.Author, money(p.Price), string(p.Status),
			})
		}
		return table(w, []string{"POST", "TITLE", "AUTHOR", "PRICE", "STATUS"}, rows)
	}
}
