package ui

// Base provides focus and size bookkeeping for components.
// Embed it to get the standard methods:
//
//	type Model struct {
//	    ui.Base
//	    cursor cursor.Cursor
//	}
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }
func (b Base) IsFocused() bool          { return b.focused }

// SetSize sets the component dimensions. Negative values are treated as zero.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }
