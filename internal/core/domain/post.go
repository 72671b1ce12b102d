package domain

import (
	"strings"
	"time"
)

// PostStatus represents the moderation lifecycle of a listing.
type PostStatus string

const (
	PostApproved PostStatus = "APPROVED"
	PostPending  PostStatus = "PENDING"
	PostDeclined PostStatus = "DECLINED"
	PostSold     PostStatus = "SOLD"
)

// ParsePostStatus accepts any casing, as the upstream API does.
func ParsePostStatus(s string) (PostStatus, bool) {
	st := PostStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case PostApproved, PostPending, PostDeclined, PostSold:
		return st, true
	}
	return "", false
}

// Post is the summary view of a listing (my-posts, admin lists, create result).
type Post struct {
	PostID    int        `json:"postID"`
	BookID    int        `json:"bookID"`
	Title     string     `json:"title"`
	Author    string     `json:"author,omitempty"`
	Price     float64    `json:"price"`
	Image     string     `json:"image,omitempty"`
	Province  string     `json:"province,omitempty"`
	District  string     `json:"district,omitempty"`
	Status    PostStatus `json:"postStatus"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// BookDetail is a listing joined with its book, seller and category.
// ContactInfo, UserID and UserName are blank for unauthenticated readers.
type BookDetail struct {
	BookID          int        `json:"bookID"`
	Title           string     `json:"title"`
	Author          string     `json:"author,omitempty"`
	BookCondition   string     `json:"bookCondition,omitempty"`
	Price           float64    `json:"price"`
	Description     string     `json:"description,omitempty"`
	Image           string     `json:"image,omitempty"`
	ContactInfo     string     `json:"contactInfo,omitempty"`
	Province        string     `json:"province,omitempty"`
	District        string     `json:"district,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	PostID          int        `json:"postID"`
	PostDescription string     `json:"postDescription,omitempty"`
	PostStatus      PostStatus `json:"postStatus,omitempty"`
	UserID          int        `json:"userID,omitempty"`
	UserName        string     `json:"userName,omitempty"`
	CategoryID      int        `json:"categoryID,omitempty"`
	CategoryName    string     `json:"categoryName,omitempty"`
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title           string  `json:"title"           validate:"required"`
	Author          string  `json:"author,omitempty"`
	BookCondition   string  `json:"bookCondition"   validate:"required"`
	Price           float64 `json:"price"           validate:"required,gt=0"`
	PostDescription string  `json:"postDescription" validate:"required"`
	Image           string  `json:"image,omitempty"`
	ContactInfo     string  `json:"contactInfo"     validate:"required"`
	CategoryID      int     `json:"categoryID"      validate:"required"`
	Province        string  `json:"province,omitempty"`
	District        string  `json:"district,omitempty"`
}

// UpdatePostRequest is the body of PUT /my-posts/{id}; nil fields are left unchanged.
type UpdatePostRequest struct {
	Title           *string  `json:"title,omitempty"`
	Author          *string  `json:"author,omitempty"`
	BookCondition   *string  `json:"bookCondition,omitempty"`
	Price           *float64 `json:"price,omitempty"           validate:"omitempty,gt=0"`
	PostDescription *string  `json:"postDescription,omitempty"`
	Image           *string  `json:"image,omitempty"`
	ContactInfo     *string  `json:"contactInfo,omitempty"`
	CategoryID      *int     `json:"categoryID,omitempty"`
	Province        *string  `json:"province,omitempty"`
	District        *string  `json:"district,omitempty"`
}

// StatusRequest is the body of every admin status endpoint.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookSearch holds the optional filters of GET /books/search.
type BookSearch struct {
	Title    string
	Author   string
	Province string
	District string
}
