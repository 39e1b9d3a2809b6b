package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Task status colors
	Done    string `yaml:"done"`
	NotDone string `yaml:"not_done"`
	Overdue string `yaml:"overdue"`

	// Semantic colors
	Create string `yaml:"create"` // creation prompts
	Delete string `yaml:"delete"` // delete confirmations

	// UI element colors
	BoardBorder    string `yaml:"board_border"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.fill(GetPreset(c.Preset))
}

// MergeFrom overrides c with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	for i, dst := range c.fields() {
		if v := *other.fields()[i]; v != "" {
			*dst = v
		}
	}
}

func (c *ColorScheme) fill(base *ColorScheme) {
	src := base.fields()
	for i, dst := range c.fields() {
		if *dst == "" {
			*dst = *src[i]
		}
	}
}

// fields lists the color values in a fixed order. Preset is excluded.
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent,
		&c.Done, &c.NotDone, &c.Overdue,
		&c.Create, &c.Delete,
		&c.BoardBorder, &c.SelectedBorder, &c.SelectedBg,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
	}
}
