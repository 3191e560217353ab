package ui

// Base holds the size and focus shared by panel models. Embed it.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }
func (b Base) IsFocused() bool          { return b.focused }

// SetSize records the outer size, border included. Negative sizes read as 0.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// InnerWidth is the width inside the panel border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderHeight, 0)
}

// ListHeight is the number of rows left for entries below the panel header.
func (b Base) ListHeight() int {
	return max(b.height-PanelOverhead, 0)
}
