package config

// KeyMappings defines the board view's configurable key bindings
type KeyMappings struct {
	// Tasks
	ToggleStatus string `yaml:"toggle_status"`
	DeleteTask   string `yaml:"delete_task"`
	AskAdvice    string `yaml:"ask_advice"`

	// Navigation
	PrevTask string `yaml:"prev_task"`
	NextTask string `yaml:"next_task"`

	// Other
	Filter   string `yaml:"filter"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		ToggleStatus: "space",
		DeleteTask:   "d",
		AskAdvice:    "a",

		PrevTask: "k",
		NextTask: "j",

		Filter:   "/",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	pairs := []struct{ dst, def *string }{
		{&k.ToggleStatus, &defaults.ToggleStatus},
		{&k.DeleteTask, &defaults.DeleteTask},
		{&k.AskAdvice, &defaults.AskAdvice},
		{&k.PrevTask, &defaults.PrevTask},
		{&k.NextTask, &defaults.NextTask},
		{&k.Filter, &defaults.Filter},
		{&k.Refresh, &defaults.Refresh},
		{&k.ShowHelp, &defaults.ShowHelp},
		{&k.Quit, &defaults.Quit},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = *p.def
		}
	}
}
