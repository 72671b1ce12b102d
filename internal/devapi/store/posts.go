package store

import (
	"strings"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// BookFilter narrows Search. Empty fields match everything; title and author
// match by substring, province and district exactly, all ignoring case.
type BookFilter struct {
	Title    string
	Author   string
	Province string
	District string
}

func (f BookFilter) match(p *postRecord) bool {
	contains := func(have, want string) bool {
		return want == "" || strings.Contains(strings.ToLower(have), strings.ToLower(want))
	}
	equal := func(have, want string) bool {
		return want == "" || strings.EqualFold(have, want)
	}
	return contains(p.title, f.Title) &&
		contains(p.author, f.Author) &&
		equal(p.province, f.Province) &&
		equal(p.district, f.District)
}

// Books lists approved listings, newest first.
func (s *Store) Books(authenticated bool) []domain.BookDetail {
	return s.Search(BookFilter{}, authenticated)
}

// Search lists approved listings matching f, newest first.
func (s *Store) Search(f BookFilter, authenticated bool) []domain.BookDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.sortedPosts(func(p *postRecord) bool {
		return p.status == domain.PostApproved && f.match(p)
	})
	out := make([]domain.BookDetail, 0, len(recs))
	for _, r := range recs {
		out = append(out, s.detail(r, authenticated))
	}
	return out
}

// Book returns the approved listing for bookID.
func (s *Store) Book(bookID int, authenticated bool) (*domain.BookDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.bookID == bookID && p.status == domain.PostApproved {
			d := s.detail(p, authenticated)
			return &d, nil
		}
	}
	return nil, notFound("book")
}

// Viewer identifies who is reading a listing. A zero Viewer is a guest.
type Viewer struct {
	UserID int
	Admin  bool
}

// Authenticated reports whether v is a logged-in caller.
func (v Viewer) Authenticated() bool { return v.UserID != 0 || v.Admin }

// Post returns one listing. Listings that are not approved are visible only
// to their owner and to administrators.
func (s *Store) Post(postID int, v Viewer) (*domain.BookDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, notFound("post")
	}
	if p.status != domain.PostApproved && !v.Admin && p.userID != v.UserID {
		return nil, notFound("post")
	}
	d := s.detail(p, v.Authenticated())
	return &d, nil
}

// CreatePost stores a new PENDING listing owned by userID. Location defaults
// to the owner's profile.
func (s *Store) CreatePost(userID int, req domain.CreatePostRequest) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[userID]
	if !ok {
		return nil, notFound("user")
	}
	if _, ok := s.categories[req.CategoryID]; !ok {
		return nil, invalid("unknown category %d", req.CategoryID)
	}

	rec := &postRecord{
		postID:          s.nextPostID,
		bookID:          s.nextBookID,
		userID:          userID,
		categoryID:      req.CategoryID,
		title:           strings.TrimSpace(req.Title),
		author:          req.Author,
		bookCondition:   req.BookCondition,
		postDescription: req.PostDescription,
		image:           req.Image,
		contactInfo:     req.ContactInfo,
		province:        req.Province,
		district:        req.District,
		price:           req.Price,
		status:          domain.PostPending,
		createdAt:       s.now(),
	}
	if rec.province == "" {
		rec.province = owner.Province
	}
	if rec.district == "" {
		rec.district = owner.District
	}
	s.nextPostID++
	s.nextBookID++
	s.posts[rec.postID] = rec

	out := rec.post()
	return &out, nil
}

// PostsByUser lists every listing owned by userID, newest first.
func (s *Store) PostsByUser(userID int) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.sortedPosts(func(p *postRecord) bool { return p.userID == userID }))
}

// ownedPost returns the listing if userID owns it. Callers hold s.mu.
func (s *Store) ownedPost(userID, postID int) (*postRecord, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, notFound("post")
	}
	if p.userID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

// UpdatePost applies the non-nil fields of req. An edited listing goes back
// to PENDING for review; sold listings cannot be edited.
func (s *Store) UpdatePost(userID, postID int, req domain.UpdatePostRequest) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.ownedPost(userID, postID)
	if err != nil {
		return nil, err
	}
	if p.status == domain.PostSold {
		return nil, invalid("sold posts cannot be edited")
	}
	if req.CategoryID != nil {
		if _, ok := s.categories[*req.CategoryID]; !ok {
			return nil, invalid("unknown category %d", *req.CategoryID)
		}
		p.categoryID = *req.CategoryID
	}
	if req.Price != nil {
		p.price = *req.Price
	}
	setPtr(&p.title, req.Title)
	setPtr(&p.author, req.Author)
	setPtr(&p.bookCondition, req.BookCondition)
	setPtr(&p.postDescription, req.PostDescription)
	setPtr(&p.image, req.Image)
	setPtr(&p.contactInfo, req.ContactInfo)
	setPtr(&p.province, req.Province)
	setPtr(&p.district, req.District)
	p.status = domain.PostPending

	out := p.post()
	return &out, nil
}

func setPtr(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// DeletePost removes one of userID's listings.
func (s *Store) DeletePost(userID, postID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ownedPost(userID, postID); err != nil {
		return err
	}
	delete(s.posts, postID)
	return nil
}

// MarkSold flags one of userID's listings as SOLD.
func (s *Store) MarkSold(userID, postID int) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.ownedPost(userID, postID)
	if err != nil {
		return nil, err
	}
	p.status = domain.PostSold
	out := p.post()
	return &out, nil
}

// Posts lists every listing, newest first.
func (s *Store) Posts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.sortedPosts(func(*postRecord) bool { return true }))
}

// PostsByStatus lists listings in one moderation state, given in any casing.
func (s *Store) PostsByStatus(status string) ([]domain.Post, error) {
	st, ok := domain.ParsePostStatus(status)
	if !ok {
		return nil, invalid("unknown post status %q", status)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.sortedPosts(func(p *postRecord) bool { return p.status == st })), nil
}

// SetPostStatus moves a listing to status, given in any casing.
func (s *Store) SetPostStatus(postID int, status string) (*domain.Post, error) {
	st, ok := domain.ParsePostStatus(status)
	if !ok {
		return nil, invalid("unknown post status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, notFound("post")
	}
	p.status = st
	out := p.post()
	return &out, nil
}

func collect(recs []*postRecord) []domain.Post {
	out := make([]domain.Post, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.post())
	}
	return out
}
