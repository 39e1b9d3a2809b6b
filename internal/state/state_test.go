package state

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_GetReturnsCopy(t *testing.T) {
	c := New([]int{1, 2, 3}, slices.Clone[[]int])

	snap := c.Get()
	snap[0] = 99

	assert.Equal(t, []int{1, 2, 3}, c.Get())
}

func TestContainer_SetCopiesInput(t *testing.T) {
	c := New[[]int](nil, slices.Clone[[]int])
	in := []int{1}
	c.Set(in)
	in[0] = 5

	assert.Equal(t, []int{1}, c.Get())
}

func TestContainer_Update(t *testing.T) {
	c := New([]int{3, 1}, slices.Clone[[]int])

	got := c.Update(func(v []int) []int {
		v = append(v, 2)
		slices.Sort(v)
		return v
	})

	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, []int{1, 2, 3}, c.Get())
}

func TestContainer_UpdateIsAtomic(t *testing.T) {
	c := New(0, nil)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, c.Get())
}

func TestContainer_Subscribe(t *testing.T) {
	c := New("a", nil)
	ch := c.Subscribe()

	c.Set("b")
	c.Set("c")

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}
	// Signals coalesce into one pending value.
	select {
	case <-ch:
		t.Fatal("expected signals to coalesce")
	default:
	}

	c.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
	c.Set("d")
}

func TestNotificationState(t *testing.T) {
	s := NewNotificationState()
	require.False(t, s.HasAny())

	s.Add(LevelInfo, "hello")
	s.Notify("Failed to delete task")

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, LevelError, all[1].Level)
	assert.Equal(t, "error", all[1].Level.String())

	s.ClearLevel(LevelInfo)
	assert.Len(t, s.All(), 1)

	drained := s.Drain()
	assert.Len(t, drained, 1)
	assert.False(t, s.HasAny())
}
