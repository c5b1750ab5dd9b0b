package models

import (
	"errors"
	"strings"
)

const DefaultPlan = "Free Miner Robot"

// UserProfile is the single registered wallet owner. Created at registration,
// mutated by profile edits, never deleted within a session.
type UserProfile struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Plan     string `json:"plan"`
	Referral string `json:"referral,omitempty"`
}

func (u *UserProfile) Validate() error {
	if len(strings.TrimSpace(u.FullName)) < 3 {
		return errors.New("full name too short")
	}
	if len(DigitsOnly(u.Phone)) < 7 {
		return errors.New("invalid phone number")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Plan == "" {
		u.Plan = DefaultPlan
	}
	return nil
}

// DigitsOnly strips everything but 0-9; phone and account numbers are stored
// in this form.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
