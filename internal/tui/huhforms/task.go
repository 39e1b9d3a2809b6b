package huhforms

import (
	"strings"

	"charm.land/huh/v2"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

// CreateTaskForm creates a huh form for adding a task.
// The form uses pointers to update values in place.
func CreateTaskForm(
	name *string,
	description *string,
	dueDate *string,
	confirm *bool,
	descriptionLines int,
) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name").
			Placeholder("Enter task name...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errEmptyName
				}
				return nil
			}).
			Value(name),

		// Description text area field with dynamic height
		huh.NewText().
			Key("description").
			Title("Description").
			Placeholder("Enter task description...").
			CharLimit(5000).
			Lines(descriptionLines).
			Value(description),

		huh.NewInput().
			Key("due").
			Title("Due date").
			Placeholder("YYYY-MM-DD (optional)").
			Validate(func(s string) error {
				_, err := models.ParseDate(strings.TrimSpace(s))
				return err
			}).
			Value(dueDate),

		huh.NewConfirm().
			Key("confirm").
			Title("Create this task?").
			Affirmative("Yes").
			Negative("No").
			Value(confirm),
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMapWithShiftEnter()).WithShowHelp(false)
}
