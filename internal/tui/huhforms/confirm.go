package huhforms

import (
	"errors"

	"charm.land/huh/v2"
)

var errEmptyName = errors.New("name cannot be empty")

// CreateConfirmForm asks a single yes/no question. No is the default.
func CreateConfirmForm(title, description string, confirm *bool) *huh.Form {
	field := huh.NewConfirm().
		Key("confirm").
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(confirm)
	if description != "" {
		field = field.Description(description)
	}
	return huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)
}

// CreatePasswordForm prompts for the current password and a confirmed new one
func CreatePasswordForm(oldPassword, newPassword, confirm *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("old").
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(oldPassword),
		huh.NewInput().
			Key("new").
			Title("New password").
			Description("At least 8 characters").
			EchoMode(huh.EchoModePassword).
			Value(newPassword),
		huh.NewInput().
			Key("confirm").
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			Value(confirm),
	)).WithShowHelp(false)
}

// CreateSecretForm prompts for one hidden value, such as a login password
func CreateSecretForm(title string, value *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("secret").
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(value),
	)).WithShowHelp(false)
}
