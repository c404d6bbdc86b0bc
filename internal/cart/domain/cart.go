package domain

import (
	catalog "github.com/tair/littleones/internal/catalog/domain"
)

// LineKey identifies a cart line. Adding the same key again merges quantities.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// LineItem is one (product, size, color) combination in the cart. Product is a
// snapshot taken when the line was first added.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
}

// Key returns the line's identity
func (l *LineItem) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Size: l.Size, Color: l.Color}
}

// Subtotal is price times quantity
func (l *LineItem) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// WishlistEntry is one saved product, unique by product id
type WishlistEntry struct {
	Product catalog.Product `json:"product"`
}

// State is everything the cart store persists. Both sequences keep insertion order.
type State struct {
	Items    []LineItem      `json:"items"`
	Wishlist []WishlistEntry `json:"wishlist"`
}

// EmptyState returns a state with non-nil, empty sequences
func EmptyState() State {
	return State{Items: []LineItem{}, Wishlist: []WishlistEntry{}}
}

// Clone returns a deep enough copy that callers cannot mutate the original's sequences
func (s State) Clone() State {
	out := State{
		Items:    make([]LineItem, len(s.Items)),
		Wishlist: make([]WishlistEntry, len(s.Wishlist)),
	}
	copy(out.Items, s.Items)
	copy(out.Wishlist, s.Wishlist)
	return out
}

// Total sums price × quantity over every line
func (s State) Total() float64 {
	var total float64
	for i := range s.Items {
		total += s.Items[i].Subtotal()
	}
	return total
}

// Count sums quantities over every line
func (s State) Count() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// IndexOf returns the position of the line with key, or -1
func (s State) IndexOf(key LineKey) int {
	for i := range s.Items {
		if s.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// InWishlist reports whether productID is saved
func (s State) InWishlist(productID string) bool {
	for _, entry := range s.Wishlist {
		if entry.Product.ID == productID {
			return true
		}
	}
	return false
}
