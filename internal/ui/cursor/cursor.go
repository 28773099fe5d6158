// Package cursor tracks the selection and scroll offset of a list.
package cursor

// Cursor manages cursor position and scroll offset for a scrollable list.
// The list length and viewport height are passed to methods rather than stored,
// since results are replaced wholesale on every search.
type Cursor struct {
	pos    int // selected index
	offset int // first visible index
	margin int // rows kept visible above/below the cursor
}

// New creates a new Cursor with the specified scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int    { return c.pos }
func (c Cursor) Offset() int { return c.offset }

// Move moves the cursor by delta within a list of listLen items, clamping to
// bounds and scrolling so the cursor stays visible. No-op on an empty list.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.ensureVisible(listLen, height)
}

// Reset moves the cursor back to the top.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// ClampToBounds pulls the cursor back inside a list that shrank.
// Returns true if the cursor was adjusted.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		changed := c.pos != 0 || c.offset != 0
		c.Reset()
		return changed
	}
	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	c.offset = clamp(c.offset, c.pos)
	return c.pos != old
}

// VisibleRange returns the range of visible indices [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey handles list navigation keys and reports whether the key was used.
// Letter keys are left to the search input: up/down, ctrl+p/ctrl+n and
// pgup/pgdown (half a page) move the cursor.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "down", "ctrl+n":
		c.Move(1, listLen, height)
	case "up", "ctrl+p":
		c.Move(-1, listLen, height)
	case "pgdown":
		c.Move(max(height/2, 1), listLen, height)
	case "pgup":
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

func (c *Cursor) ensureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
