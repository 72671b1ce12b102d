package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// Register creates an active user account.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	return s.createUser(ctx, req, false)
}

// CreateAdmin creates an administrator account.
func (s *Store) CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.createUser(ctx, domain.RegisterRequest{Name: name, Email: email, Password: password}, true)
}

func (s *Store) createUser(ctx context.Context, req domain.RegisterRequest, admin bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)
	if _, ok := s.emails[email]; ok {
		return nil, ErrEmailTaken
	}

	rec := &userRecord{
		User: domain.User{
			ID:        s.nextUserID,
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Phone:     req.Phone,
			Province:  req.Province,
			District:  req.District,
			Ward:      req.Ward,
			Status:    domain.UserActive,
			CreatedAt: s.timestamp(),
		},
		hash:  hash,
		admin: admin,
	}
	s.nextUserID++
	s.users[rec.ID] = rec
	s.emails[email] = rec.ID

	u := rec.User
	return &u, nil
}

// Authenticate checks email and password against the user (admin=false) or
// administrator (admin=true) accounts.
func (s *Store) Authenticate(ctx context.Context, email, password string, admin bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	id, ok := s.emails[normalizeEmail(email)]
	var rec userRecord
	if ok {
		rec = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok || rec.admin != admin {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(rec.hash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if rec.Status != domain.UserActive {
		return nil, ErrAccountInactive
	}
	u := rec.User
	return &u, nil
}

// User returns a non-admin account by ID.
func (s *Store) User(id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok || rec.admin {
		return nil, notFound("user")
	}
	u := rec.User
	return &u, nil
}

// Users lists every non-admin account by ID.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, rec := range s.users {
		if !rec.admin {
			out = append(out, rec.User)
		}
	}
	slices.SortFunc(out, func(a, b domain.User) int { return a.ID - b.ID })
	return out
}

// UpdateUser applies the non-empty fields of req.
func (s *Store) UpdateUser(id int, req domain.UpdateUserRequest) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok || rec.admin {
		return nil, notFound("user")
	}
	setIf(&rec.Name, strings.TrimSpace(req.Name))
	setIf(&rec.Phone, req.Phone)
	setIf(&rec.Province, req.Province)
	setIf(&rec.District, req.District)
	setIf(&rec.Ward, req.Ward)
	u := rec.User
	return &u, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *Store) ChangePassword(ctx context.Context, id int, oldPassword, newPassword string) error {
	s.mu.RLock()
	rec, ok := s.users[id]
	var hash []byte
	if ok {
		hash = rec.hash
	}
	s.mu.RUnlock()
	if !ok || rec.admin {
		return notFound("user")
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(oldPassword)) != nil {
		return ErrWrongPassword
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	next, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[id]; ok {
		rec.hash = next
	}
	return nil
}

// SetUserStatus moves an account to status, given in any casing.
func (s *Store) SetUserStatus(id int, status string) (*domain.User, error) {
	st := domain.UserStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch st {
	case domain.UserPending, domain.UserActive, domain.UserSuspended, domain.UserBanned, domain.UserDeleted:
	default:
		return nil, invalid("unknown user status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok || rec.admin {
		return nil, notFound("user")
	}
	rec.Status = st
	u := rec.User
	return &u, nil
}

// DeleteUser removes an account together with its listings.
func (s *Store) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok || rec.admin {
		return notFound("user")
	}
	for pid, p := range s.posts {
		if p.userID == id {
			delete(s.posts, pid)
		}
	}
	delete(s.emails, rec.Email)
	delete(s.users, id)
	return nil
}

func setIf(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
