package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func TestModel_Cycle(t *testing.T) {
	m := New([]string{"London", "Londonderry", "Long Beach"}, render)

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Nil(t, m.SelectedItem())

	m.Next()
	i, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, i)

	m.Next()
	m.Next()
	m.Next()
	i, _ = m.Selected()
	assert.Equal(t, 0, i, "wraps to first")

	m.Prev()
	i, _ = m.Selected()
	assert.Equal(t, 2, i, "wraps to last")
	assert.Equal(t, "Long Beach", *m.SelectedItem())
}

func TestModel_PrevFromUnset(t *testing.T) {
	m := New([]string{"a", "b"}, render)
	m.Prev()
	i, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestModel_Empty(t *testing.T) {
	m := New[string](nil, render)
	m.Next()
	m.Prev()
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Empty(t, m.View())
}

func TestModel_SetItemsResets(t *testing.T) {
	m := New([]string{"a", "b"}, render)
	m.Next()
	m.SetItems([]string{"c"})
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestModel_View(t *testing.T) {
	m := New([]string{"a", "b"}, render)
	m.Next()
	assert.Equal(t, "> a\n  b", m.View())
}
