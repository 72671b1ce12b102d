package main

import (
	"errors"
	"fmt"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

const (
	exitGeneric       = 1
	exitUnauthorized  = 3
	exitRequestFailed = 4
	exitNetwork       = 5
	exitCanceled      = 130
)

type exitError struct {
	code   int
	err    error
	hint   string
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("exit %d", e.code)
	if e.err != nil {
		msg = e.err.Error()
	}
	if e.hint != "" {
		msg += " (" + e.hint + ")"
	}
	return msg
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// classify attaches the exit code for err's kind. Cancellation passes through
// so the caller can report it as such.
func classify(err error, role domain.Role) error {
	var apiErr *domain.APIError
	if err == nil || !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Kind {
	case domain.KindUnauthorized:
		hint := "run `sachcu login`"
		if role == domain.RoleAdmin {
			hint = "run `sachcu admin-login`"
		}
		return &exitError{code: exitUnauthorized, err: err, hint: hint}
	case domain.KindRequestFailed:
		return &exitError{code: exitRequestFailed, err: err}
	case domain.KindNetwork:
		return &exitError{code: exitNetwork, err: err}
	}
	return err
}
