package domain

import "time"

// Category groups listings; BookCount is only filled on public listings.
type Category struct {
	CategoryID   int    `json:"categoryID"`
	CategoryName string `json:"categoryName"`
	BookCount    int    `json:"bookCount,omitempty"`
}

// CategoryRequest is the body of admin category create/update.
type CategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required"`
}

// ReportStatus is the triage state of a user report.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "OPEN"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Report is a complaint filed against a listing.
type Report struct {
	ReportID   int          `json:"reportID"`
	PostID     int          `json:"postID,omitempty"`
	Reason     string       `json:"reason"`
	ReportDate *time.Time   `json:"reportDate,omitempty"`
	Status     ReportStatus `json:"status"`
}

// ImageUpload is the result of POST /images/upload.
type ImageUpload struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
	Message  string `json:"message,omitempty"`
}

// Message is the generic acknowledgement body.
type Message struct {
	Message string `json:"message"`
	Success bool   `json:"success,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"               validate:"required,max=100"`
	Email    string `json:"email"              validate:"required,email"`
	Password string `json:"password"           validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"    validate:"max=15"`
	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

// LoginRequest is the body of both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"     validate:"max=100"`
	Phone    string `json:"phone,omitempty"    validate:"max=15"`
	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Ward     string `json:"ward,omitempty"`
}

// ChangePasswordRequest is the body of POST /users/{id}/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
