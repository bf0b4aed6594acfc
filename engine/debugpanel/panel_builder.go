package debugpanel

// PanelBuilderOption is a functional option for configuring a Panel via NewPanel.
type PanelBuilderOption func(*panel)

// WithHidden starts the panel hidden.
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithHidden() PanelBuilderOption {
	return func(p *panel) {
		p.visible = false
	}
}

// WithValueFormat sets the fmt verb used to print values in the status line. Defaults to "%.2f".
//
// Parameters:
//   - format: a fmt verb accepting a float32
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithValueFormat(format string) PanelBuilderOption {
	return func(p *panel) {
		p.format = format
	}
}
