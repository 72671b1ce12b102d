package validate

import (
	"errors"
	"testing"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

func TestValidate(t *testing.T) {
	price := -1.0
	cases := []struct {
		name    string
		payload any
		want    string
	}{
		{"valid register", &domain.RegisterRequest{Name: "An", Email: "an@example.com", Password: "secret1"}, ""},
		{"missing fields", &domain.LoginRequest{}, "email is required; password is required"},
		{"bad email", &domain.RegisterRequest{Name: "An", Email: "nope", Password: "secret1"}, "email must be a valid email"},
		{"short password", &domain.RegisterRequest{Name: "An", Email: "an@example.com", Password: "123"}, "password must be at least 6 characters"},
		{"non-positive price", &domain.UpdatePostRequest{Price: &price}, "price must be greater than 0"},
		{"empty category", &domain.CategoryRequest{}, "categoryName is required"},
	}

	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.payload)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if got := Detail(err); got != tc.want {
				t.Fatalf("detail = %q, want %q", got, tc.want)
			}
		})
	}
}
