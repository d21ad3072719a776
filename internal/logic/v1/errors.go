// Package v1 provides authentication business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent common authentication failures.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned
// from business logic methods.
//
// Example Usage:
//
//	if account == nil {
//	    return nil, fmt.Errorf("authenticate %q: %w", email, ErrInvalidCredentials)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
//	case errors.Is(err, logicv1.ErrEmailTaken):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for authentication operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrPasswordMismatch indicates password and confirm_password differ at registration.
	// HTTP Status: 400 Bad Request
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmailTaken indicates the email is already registered.
	// HTTP Status: 400 Bad Request (generic message, no extra detail)
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. It deliberately
	// covers both "no such account" and "wrong password" so responses
	// cannot be used to enumerate accounts.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the token subject no longer resolves
	// to an account (e.g. the store was rebuilt since issuance).
	// HTTP Status: 401 Unauthorized (don't reveal account existence)
	ErrUserNotFound = errors.New("user not found")
)
