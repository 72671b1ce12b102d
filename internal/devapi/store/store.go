// Package store is the memory-only backing state of the development API.
package store

import (
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// Options configures a Store.
type Options struct {
	// HashCost is the bcrypt cost for stored passwords. Zero means
	// bcrypt.DefaultCost.
	HashCost int
	// Now overrides the clock.
	Now func() time.Time
}

type userRecord struct {
	domain.User
	hash  []byte
	admin bool
}

type postRecord struct {
	postID          int
	bookID          int
	userID          int
	categoryID      int
	title           string
	author          string
	bookCondition   string
	description     string
	postDescription string
	image           string
	contactInfo     string
	province        string
	district        string
	price           float64
	status          domain.PostStatus
	createdAt       time.Time
}

// Image is an uploaded file held in memory.
type Image struct {
	ContentType string
	Data        []byte
}

// Store holds users, listings, categories, reports and images. It is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	cost int
	now  func() time.Time

	nextUserID     int
	nextPostID     int
	nextBookID     int
	nextCategoryID int
	nextReportID   int

	users      map[int]*userRecord
	emails     map[string]int
	posts      map[int]*postRecord
	categories map[int]*domain.Category
	reports    map[int]*domain.Report
	images     map[string]Image
}

// New returns an empty Store.
func New(opts Options) *Store {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Store{
		cost:           cost,
		now:            now,
		nextUserID:     1,
		nextPostID:     1,
		nextBookID:     1001,
		nextCategoryID: 1,
		nextReportID:   1,
		users:          make(map[int]*userRecord),
		emails:         make(map[string]int),
		posts:          make(map[int]*postRecord),
		categories:     make(map[int]*domain.Category),
		reports:        make(map[int]*domain.Report),
		images:         make(map[string]Image),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) timestamp() *time.Time {
	t := s.now()
	return &t
}

func (r *postRecord) post() domain.Post {
	created := r.createdAt
	return domain.Post{
		PostID:    r.postID,
		BookID:    r.bookID,
		Title:     r.title,
		Author:    r.author,
		Price:     r.price,
		Image:     r.image,
		Province:  r.province,
		District:  r.district,
		Status:    r.status,
		CreatedAt: &created,
	}
}

// detail joins r with its seller and category. Guests do not see the seller
// or contact info.
func (s *Store) detail(r *postRecord, authenticated bool) domain.BookDetail {
	created := r.createdAt
	d := domain.BookDetail{
		BookID:          r.bookID,
		Title:           r.title,
		Author:          r.author,
		BookCondition:   r.bookCondition,
		Price:           r.price,
		Description:     r.description,
		Image:           r.image,
		Province:        r.province,
		District:        r.district,
		CreatedAt:       &created,
		PostID:          r.postID,
		PostDescription: r.postDescription,
		PostStatus:      r.status,
		CategoryID:      r.categoryID,
	}
	if cat, ok := s.categories[r.categoryID]; ok {
		d.CategoryName = cat.CategoryName
	}
	if authenticated {
		d.ContactInfo = r.contactInfo
		d.UserID = r.userID
		if u, ok := s.users[r.userID]; ok {
			d.UserName = u.Name
		}
	}
	return d
}

// sortedPosts returns the posts matching keep, newest first.
func (s *Store) sortedPosts(keep func(*postRecord) bool) []*postRecord {
	out := make([]*postRecord, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *postRecord) int { return b.postID - a.postID })
	return out
}
