// Package list provides a generic scrollable list component.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/culturedeck/internal/ui"
	"github.com/llehouerou/culturedeck/internal/ui/cursor"
)

// Action represents what happened during Update.
type Action int

const (
	ActionNone  Action = iota
	ActionMoved        // cursor moved
	ActionEnter        // enter pressed on an item
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to (-1 if none)
}

// Model is a generic scrollable list. It handles navigation and leaves
// rendering to the parent through VisibleRange.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates a new list with the given scroll margin.
func New[T any](margin int) Model[T] {
	return Model[T]{cursor: cursor.New(margin)}
}

// SetItems replaces all items and moves the cursor to the top.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.Reset()
}

// Refresh replaces all items but keeps the cursor, clamped to the new length.
func (m *Model[T]) Refresh(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items))
}

// Items returns the current items slice.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor, or false if the list is empty.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the current cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.Height())
}

// Move moves the cursor by delta.
func (m *Model[T]) Move(delta int) {
	m.cursor.Move(delta, len(m.items), m.Height())
}

// Update handles navigation keys when the list is focused.
func (m *Model[T]) Update(msg tea.Msg) Result {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return Result{Index: -1}
	}

	if m.cursor.HandleKey(keyMsg.String(), len(m.items), m.Height()) {
		return Result{Action: ActionMoved, Index: m.cursor.Pos()}
	}
	if keyMsg.String() == "enter" && len(m.items) > 0 {
		return Result{Action: ActionEnter, Index: m.cursor.Pos()}
	}
	return Result{Index: -1}
}
