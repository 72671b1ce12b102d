package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

var searchParams domain.BookSearch

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse approved listings",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every approved listing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			books, err := a.client.Books.List(ctx)
			if err != nil {
				return err
			}
			return render(cmd, books, bookTable(books))
		})
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get BOOK_ID",
	Short: "Show one listing by book ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			book, err := a.client.Books.Get(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, book, bookDetail(book))
		})
	},
}

var booksSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search listings by title, author and location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, domain.RoleNone, func(ctx context.Context, a *app) error {
			books, err := a.client.Books.Search(ctx, searchParams)
			if err != nil {
				return err
			}
			return render(cmd, books, bookTable(books))
		})
	},
}

var booksProvinceCmd = &cobra.Command{
	Use:   "province NAME",
	Short: "List listings in one province",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			books, err := a.client.Books.ByProvince(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd, books, bookTable(books))
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their listing counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, domain.RoleUser, func(ctx context.Context, a *app) error {
			cats, err := a.client.Categories.List(ctx)
			if err != nil {
				return err
			}
			return render(cmd, cats, categoryTable(cats))
		})
	},
}

func init() {
	f := booksSearchCmd.Flags()
	f.StringVar(&searchParams.Title, "title", "", "title contains")
	f.StringVar(&searchParams.Author, "author", "", "author contains")
	f.StringVar(&searchParams.Province, "province", "", "province")
	f.StringVar(&searchParams.District, "district", "", "district")

	booksCmd.AddCommand(booksListCmd, booksGetCmd, booksSearchCmd, booksProvinceCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func bookTable(books []domain.BookDetail) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := make([][]string, 0, len(books))
		for _, b := range books {
			rows = append(rows, []string{
				strconv.Itoa(b.PostID), strconv.Itoa(b.BookID), b.Title, b.Author,
				money(b.Price), b.Province, b.CategoryName,
			})
		}
		return table(w, []string{"POST", "BOOK", "TITLE", "AUTHOR", "PRICE", "PROVINCE", "CATEGORY"}, rows)
	}
}

func bookDetail(b *domain.BookDetail) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := [][]string{
			{"title", b.Title},
			{"author", b.Author},
			{"condition", b.BookCondition},
			{"price", money(b.Price)},
			{"status", string(b.PostStatus)},
			{"category", b.CategoryName},
			{"location", b.District + ", " + b.Province},
			{"description", b.PostDescription},
		}
		if b.ContactInfo != "" {
			rows = append(rows, []string{"seller", b.UserName}, []string{"contact", b.ContactInfo})
		}
		return table(w, []string{"FIELD", "VALUE"}, rows)
	}
}

func categoryTable(cats []domain.Category) func(io.Writer) error {
	return func(w io.Writer) error {
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{strconv.Itoa(c.CategoryID), c.CategoryName, strconv.Itoa(c.BookCount)})
		}
		return table(w, []string{"ID", "NAME", "BOOKS"}, rows)
	}
}
