package store

import (
	"slices"
	"strings"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// Categories lists categories by ID with their approved listing counts.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[int]int)
	for _, p := range s.posts {
		if p.status == domain.PostApproved {
			counts[p.categoryID]++
		}
	}
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cat := *c
		cat.BookCount = counts[c.CategoryID]
		out = append(out, cat)
	}
	slices.SortFunc(out, func(a, b domain.Category) int { return a.CategoryID - b.CategoryID })
	return out
}

// nameTaken reports whether another category already uses name. Callers hold s.mu.
func (s *Store) nameTaken(name string, except int) bool {
	for id, c := range s.categories {
		if id != except && strings.EqualFold(c.CategoryName, name) {
			return true
		}
	}
	return false
}

func (s *Store) CreateCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("categoryName is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(name, 0) {
		return nil, ErrCategoryExists
	}
	c := &domain.Category{CategoryID: s.nextCategoryID, CategoryName: name}
	s.nextCategoryID++
	s.categories[c.CategoryID] = c
	out := *c
	return &out, nil
}

func (s *Store) UpdateCategory(id int, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("categoryName is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, notFound("category")
	}
	if s.nameTaken(name, id) {
		return nil, ErrCategoryExists
	}
	c.CategoryName = name
	out := *c
	return &out, nil
}

// DeleteCategory removes a category no listing refers to.
func (s *Store) DeleteCategory(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return notFound("category")
	}
	for _, p := range s.posts {
		if p.categoryID == id {
			return ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return nil
}

// AddReport files a complaint against a listing.
func (s *Store) AddReport(postID int, reason string) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return nil, notFound("post")
	}
	r := &domain.Report{
		ReportID:   s.nextReportID,
		PostID:     postID,
		Reason:     reason,
		ReportDate: s.timestamp(),
		Status:     domain.ReportOpen,
	}
	s.nextReportID++
	s.reports[r.ReportID] = r
	out := *r
	return &out, nil
}

func (s *Store) Reports() []domain.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b domain.Report) int { return a.ReportID - b.ReportID })
	return out
}

// SetReportStatus moves a report to status, given in any casing.
func (s *Store) SetReportStatus(id int, status string) (*domain.Report, error) {
	st := domain.ReportStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch st {
	case domain.ReportOpen, domain.ReportResolved, domain.ReportDismissed:
	default:
		return nil, invalid("unknown report status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, notFound("report")
	}
	r.Status = st
	out := *r
	return &out, nil
}

// SaveImage stores data under name.
func (s *Store) SaveImage(name string, img Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = img
}

func (s *Store) Image(name string) (Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[name]
	if !ok {
		return Image{}, notFound("image")
	}
	return img, nil
}

func (s *Store) DeleteImage(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[name]; !ok {
		return notFound("image")
	}
	delete(s.images, name)
	return nil
}
