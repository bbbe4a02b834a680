package listview

import (
	"strings"
)

// RenderFunc renders an item. selected marks the highlighted item.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a list with an optional highlighted item. The highlight starts
// unset and cycles through the items with Next and Prev.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is -1 when nothing is highlighted.
	selected int
}

// New creates a list over items.
func New[T any](items []T, renderFunc RenderFunc[T]) Model[T] {
	return Model[T]{
		items:      items,
		renderFunc: renderFunc,
		selected:   -1,
	}
}

// SetItems replaces the items and clears the highlight.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = -1
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Next highlights the following item, wrapping to the first.
func (m *Model[T]) Next() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.items)
}

// Prev highlights the preceding item, wrapping to the last.
func (m *Model[T]) Prev() {
	if len(m.items) == 0 {
		return
	}
	if m.selected <= 0 {
		m.selected = len(m.items) - 1
		return
	}
	m.selected--
}

// Selected returns the highlighted index.
func (m Model[T]) Selected() (int, bool) {
	return m.selected, m.selected >= 0 && m.selected < len(m.items)
}

// SelectedItem returns the highlighted item, or nil.
func (m Model[T]) SelectedItem() *T {
	i, ok := m.Selected()
	if !ok {
		return nil
	}
	return &m.items[i]
}

// View renders one line per item.
func (m Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		lines[i] = m.renderFunc(item, i == m.selected)
	}
	return strings.Join(lines, "\n")
}
