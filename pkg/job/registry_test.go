package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry[int]()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())

	_, _, ok := r.Last()
	assert.False(t, ok)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry[string]()
	r.Put("a", "first")
	r.Put("b", "second")
	r.Put("c", "third")

	assert.Equal(t, []string{"a", "b", "c"}, r.Names())

	name, v, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "c", name)
	assert.Equal(t, "third", v)
}

func TestRegistry_ReinsertMovesToEnd(t *testing.T) {
	r := NewRegistry[int]()
	r.Put("a", 1)
	r.Put("b", 2)
	r.Put("a", 3)

	assert.Equal(t, []string{"b", "a"}, r.Names())
	assert.Equal(t, 2, r.Len())

	name, v, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, 3, v)

	v, ok = r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestRegistry_NamesIsCopy(t *testing.T) {
	r := NewRegistry[int]()
	r.Put("a", 1)

	names := r.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a"}, r.Names())
}
