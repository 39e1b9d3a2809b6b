package models

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/types"
)

// Client is the signed-in user's profile as the backend reports it.
// It is cached locally only to restore a session.
type Client struct {
	ID          types.ClientID `json:"clientId"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
}

// ClientField names a profile field that can be edited on its own
type ClientField string

const (
	FieldName  ClientField = "name"
	FieldEmail ClientField = "email"
	FieldPhone ClientField = "phoneNumber"
)

// ParseClientField accepts the field names used on the command line.
func ParseClientField(s string) (ClientField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "email":
		return FieldEmail, nil
	case "phone", "phonenumber", "phone_number", "phone-number":
		return FieldPhone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// Get returns the current value of field.
func (c Client) Get(field ClientField) string {
	switch field {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.PhoneNumber
	}
	return ""
}

// With returns a copy of c with field set to value.
func (c Client) With(field ClientField, value string) Client {
	switch field {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.PhoneNumber = value
	}
	return c
}
