package session

import (
	"math"
	"sort"
	"strconv"
)

// MaxQuantity caps the quantity held on a single cart line.
const MaxQuantity = math.MaxInt32

// Cart maps a product ID, rendered in base 10, to a positive quantity.
type Cart map[string]int

// Add accumulates quantity onto the line for productID, saturating at
// MaxQuantity. Non-positive quantities are ignored so that the cart never
// stores them.
func (c Cart) Add(productID uint, quantity int) {
	if quantity <= 0 {
		return
	}
	key := cartKey(productID)
	if quantity >= MaxQuantity-c[key] {
		c[key] = MaxQuantity
		return
	}
	c[key] += quantity
}

// Remove deletes the line for productID if present.
func (c Cart) Remove(productID uint) {
	delete(c, cartKey(productID))
}

// Quantity returns the quantity held for productID, zero when absent.
func (c Cart) Quantity(productID uint) int {
	return c[cartKey(productID)]
}

// Count is the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// ProductIDs returns the product IDs in ascending order. Keys that are not
// valid IDs are skipped.
func (c Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c))
	for key := range c {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func cartKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}
