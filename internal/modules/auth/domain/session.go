package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Session is the logged-in user's identity as the backend returned it. There
// is no server-side token beyond this blob; logout is purely local.
type Session struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (s Session) Validate() error {
	if s.UserID <= 0 {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(s.Username) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

// DisplayName prefers the profile name over the login name.
func (s Session) DisplayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.Username
}

// UserKey namespaces per-user local state. The zero id maps to "guest" so
// pre-login transcripts never leak into an account.
func UserKey(userID int) string {
	if userID <= 0 {
		return "guest"
	}
	return strconv.Itoa(userID)
}

func (s Session) Key() string {
	return UserKey(s.UserID)
}

type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type Registration struct {
	Credentials
	Name  string
	Email string
}
