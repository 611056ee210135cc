package ui

// Layout breakpoints for responsive design.
const (
	// BreakpointNarrow is the width below which the filter bar wraps onto
	// one line per control.
	BreakpointNarrow = 80
)

// Fixed chrome heights around the group list.
const (
	// headerHeight covers the title and the filter bar plus divider
	headerHeight = 4

	// footerHeight covers the status bar
	footerHeight = 2

	// MinContentHeight is the minimum height for the group list
	MinContentHeight = 5
)
