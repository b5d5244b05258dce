package user

import "errors"

// friendlyMessages maps identity-provider errors to user-facing strings.
var friendlyMessages = []struct {
	err error
	msg string
}{
	{ErrWeakPassword, "Password must be at least 6 characters long."},
	{ErrEmailExists, "This email is already registered. Please log in or use a different email."},
	{ErrInvalidEmail, "Please enter a valid email address."},
	{ErrUserNotFound, "No account found with this email address."},
	{ErrInvalidCredentials, "Invalid email or password. Please try again."},
	{ErrTooManyRequests, "Too many login attempts. Please try again later."},
}

// FriendlyMessage converts an auth error to a user-friendly message,
// falling back to the raw error text.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, fm := range friendlyMessages {
		if errors.Is(err, fm.err) {
			return fm.msg
		}
	}
	return err.Error()
}
