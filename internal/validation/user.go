package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cinegraph/internal/models"
)

var userLoginRegex = regexp.MustCompile(`^\w+$`)

// ValidateUser validates a user's fields before create or update.
// An empty display name is allowed and falls back to the login.
func ValidateUser(user *models.User) error {
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if !userLoginRegex.MatchString(user.Login) {
		return fmt.Errorf("login is required and cannot contain spaces or punctuation")
	}
	if user.Birthday.After(time.Now()) {
		return fmt.Errorf("birthday cannot be in the future")
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	return nil
}
