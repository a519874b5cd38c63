package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddRemoveCount(t *testing.T) {
	cart := Cart{}
	cart.Add(3, 2)
	cart.Add(3, 1)
	cart.Add(10, 4)
	cart.Add(7, 0)
	cart.Add(7, -2)

	assert.Equal(t, 3, cart.Quantity(3))
	assert.Equal(t, 0, cart.Quantity(7))
	assert.Equal(t, 7, cart.Count())
	assert.Equal(t, []uint{3, 10}, cart.ProductIDs())

	cart.Remove(3)
	cart.Remove(3)
	assert.Equal(t, []uint{10}, cart.ProductIDs())
	assert.False(t, cart.IsEmpty())

	cart.Remove(10)
	assert.True(t, cart.IsEmpty())
}

func TestCart_ProductIDsSkipsInvalidKeys(t *testing.T) {
	cart := Cart{"2": 1, "abc": 5, "-1": 1, "11": 2}
	assert.Equal(t, []uint{2, 11}, cart.ProductIDs())
}

func TestCart_AddSaturates(t *testing.T) {
	cart := Cart{}
	cart.Add(1, math.MaxInt)
	cart.Add(1, 1)
	assert.Equal(t, MaxQuantity, cart.Quantity(1))

	cart.Add(2, MaxQuantity-1)
	cart.Add(2, 5)
	assert.Equal(t, MaxQuantity, cart.Quantity(2))

	cart.Add(3, 10)
	cart.Add(3, 5)
	assert.Equal(t, 15, cart.Quantity(3))
	assert.Positive(t, cart.Count())
}
