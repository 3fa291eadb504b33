package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddRemoveReset(t *testing.T) {
	cart := &Cart{}

	require.NoError(t, cart.Add(CartCourse{ID: 1, CourseName: "Go Basics", Price: 4999}))
	require.NoError(t, cart.Add(CartCourse{ID: 2, CourseName: "Advanced SQL", Price: 2500}))

	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 7499, cart.Total)
	assert.Equal(t, []int64{1, 2}, cart.CourseIDs())

	err := cart.Add(CartCourse{ID: 1, CourseName: "Go Basics", Price: 4999})
	assert.ErrorIs(t, err, ErrCourseInCart)
	assert.Equal(t, 2, cart.TotalItems)

	assert.True(t, cart.Remove(1))
	assert.False(t, cart.Remove(99))
	assert.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, 2500, cart.Total)

	cart.Reset()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.Total)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Empty(t, cart.CourseIDs())
}
