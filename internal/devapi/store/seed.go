package store

import (
	"context"
	"fmt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// Accounts created by Seed.
const (
	SeedAdminEmail    = "admin@sachcu.local"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "reader@sachcu.local"
	SeedUserPassword  = "reader123"
)

// Seed fills s with two accounts, three categories, three listings (two
// approved, one pending) and one open report.
func (s *Store) Seed(ctx context.Context) error {
	if _, err := s.CreateAdmin(ctx, "Admin", SeedAdminEmail, SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	reader, err := s.Register(ctx, domain.RegisterRequest{
		Name:     "Reader",
		Email:    SeedUserEmail,
		Password: SeedUserPassword,
		Phone:    "0900000000",
		Province: "Ha Noi",
		District: "Cau Giay",
	})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	cats := make(map[string]int)
	for _, name := range []string{"Fiction", "Textbooks", "Science"} {
		c, err := s.CreateCategory(name)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
		cats[name] = c.CategoryID
	}

	listings := []struct {
		req    domain.CreatePostRequest
		status domain.PostStatus
	}{
		{domain.CreatePostRequest{
			Title: "Norwegian Wood", Author: "Haruki Murakami", BookCondition: "Like new",
			Price: 85000, PostDescription: "Read once.", ContactInfo: "0900000000",
			CategoryID: cats["Fiction"],
		}, domain.PostApproved},
		{domain.CreatePostRequest{
			Title: "A Brief History of Time", Author: "Stephen Hawking", BookCondition: "Good",
			Price: 120000, PostDescription: "Some notes in margins.", ContactInfo: "0900000000",
			CategoryID: cats["Science"], Province: "Ho Chi Minh", District: "Quan 1",
		}, domain.PostApproved},
		{domain.CreatePostRequest{
			Title: "Calculus", Author: "James Stewart", BookCondition: "Worn",
			Price: 60000, PostDescription: "8th edition.", ContactInfo: "0900000000",
			CategoryID: cats["Textbooks"],
		}, domain.PostPending},
	}
	var first int
	for _, l := range listings {
		p, err := s.CreatePost(reader.ID, l.req)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", l.req.Title, err)
		}
		if first == 0 {
			first = p.PostID
		}
		if _, err := s.SetPostStatus(p.PostID, string(l.status)); err != nil {
			return err
		}
	}

	if _, err := s.AddReport(first, "Price looks wrong"); err != nil {
		return fmt.Errorf("seed report: %w", err)
	}
	return nil
}
