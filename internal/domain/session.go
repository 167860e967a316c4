package domain

import (
	"strconv"
	"time"
)

// User is the logged-in identity as the client knows it.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	DietPreference string    `json:"diet_preference,omitempty"`
	JoinDate       time.Time `json:"join_date"`
}

// NumericID returns the user id as an int, or 0 when it is not numeric.
func (u User) NumericID() int {
	n, err := strconv.Atoi(u.ID)
	if err != nil {
		return 0
	}
	return n
}

// Identity answers who is logged in. It is the only identity accessor
// components are given.
type Identity interface {
	CurrentUser() (User, bool)
}
