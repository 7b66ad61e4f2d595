package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// ErrInvalidEmail is returned when an address is not a valid RFC 5322 address
var ErrInvalidEmail = errors.New("value is not a valid email address")

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Index     string `gorm:"column:user_index"`
	Name      string
	Email     string
	CreatedAt time.Time
}

func (u User) TableName() string {
	return "users"
}

// NormalizeEmail validates an email address and returns its normalized
// form. A display-name form such as "Ada <ada@example.edu>" yields the bare
// address. The domain is lowercased and the local part is kept as given.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 1 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", ErrInvalidEmail
	}
	return addr.Address[:at+1] + strings.ToLower(addr.Address[at+1:]), nil
}
