package auth

import "github.com/Parasuram76/Task-Management-System/domain/apperr"

var (
	// ErrMissingFields is returned when registration input is incomplete.
	ErrMissingFields = apperr.Validation("Name, email and password are required")
	// ErrMissingCredentials is returned when login input is incomplete.
	ErrMissingCredentials = apperr.Validation("Email and password are required")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = apperr.Validation("Password must be at most 72 bytes")
	// ErrEmailExists is returned when an administrator already uses the email.
	ErrEmailExists = apperr.Conflict("Email already exists")
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = apperr.Authentication("Invalid credentials")
	// ErrAdminNotFound is returned when an administrator id does not resolve.
	ErrAdminNotFound = apperr.NotFound("Administrator not found")
	// ErrInvalidToken is returned when the token is malformed or badly signed.
	ErrInvalidToken = apperr.Unauthorized("Invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = apperr.Unauthorized("Token has expired")
)
