// Package store holds one shopper's cart and wishlist. Every operation is a
// policy no-op rather than an error when its target is missing, and every
// mutation is followed by a full re-serialize to the backing storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/littleones/internal/cart/domain"
	"github.com/tair/littleones/internal/cart/storage"
	catalog "github.com/tair/littleones/internal/catalog/domain"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/pkg/logger"
)

// DefaultKey is the storage key of a store that is not bound to a session
const DefaultKey = "littleones-cart"

// Options configures a Store
type Options struct {
	Storage   storage.Storage
	Key       string
	SessionID string
	Notifier  notify.Notifier
}

// Store is the cart and wishlist of one browsing session
type Store struct {
	mu        sync.Mutex
	state     domain.State
	storage   storage.Storage
	key       string
	sessionID string
	notifier  notify.Notifier
}

// New creates a store and loads its persisted state. A missing or unreadable
// record yields an empty store; the failure is only logged.
func New(ctx context.Context, opts Options) *Store {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	s := &Store{
		state:     domain.EmptyState(),
		storage:   opts.Storage,
		key:       opts.Key,
		sessionID: opts.SessionID,
		notifier:  opts.Notifier,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	blob, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", s.key).Msg("Failed to read cart state")
		return
	}

	state, err := Decode(blob)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", s.key).Msg("Failed to load cart state")
		return
	}
	s.state = state
}

// persist writes the current state; the caller holds mu
func (s *Store) persist(ctx context.Context) {
	blob, err := Encode(s.state)
	if err != nil {
		logger.Error(ctx).Err(err).Str("key", s.key).Msg("Failed to encode cart state")
		return
	}
	if err := s.storage.Set(ctx, s.key, blob); err != nil {
		logger.Error(ctx).Err(err).Str("key", s.key).Msg("Failed to save cart state")
	}
}

func (s *Store) notify(ctx context.Context, title, description string) {
	s.notifier.Notify(ctx, notify.Success(s.sessionID, title, description))
}

// AddItem adds quantity of (product, size, color), merging into an existing
// line with the same key. Quantity is not validated here.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int, size, color string) {
	s.mu.Lock()
	key := domain.LineKey{ProductID: product.ID, Size: size, Color: color}
	if i := s.state.IndexOf(key); i >= 0 {
		s.state.Items[i].Quantity += quantity
	} else {
		s.state.Items = append(s.state.Items, domain.LineItem{
			Product:  product,
			Quantity: quantity,
			Size:     size,
			Color:    color,
		})
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ctx, fmt.Sprintf("%s added to bag!", product.Name), fmt.Sprintf("Size: %s • Color: %s", size, color))
}

// RemoveItem deletes the matching line if there is one
func (s *Store) RemoveItem(ctx context.Context, productID, size, color string) {
	s.mu.Lock()
	s.removeLocked(domain.LineKey{ProductID: productID, Size: size, Color: color})
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ctx, "Item removed from bag", "")
}

func (s *Store) removeLocked(key domain.LineKey) {
	if i := s.state.IndexOf(key); i >= 0 {
		s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
	}
}

// UpdateQuantity replaces the quantity of the matching line. A quantity below
// one removes the line, exactly as RemoveItem does.
func (s *Store) UpdateQuantity(ctx context.Context, productID, size, color string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, productID, size, color)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.state.IndexOf(domain.LineKey{ProductID: productID, Size: size, Color: color}); i >= 0 {
		s.state.Items[i].Quantity = quantity
	}
	s.persist(ctx)
}

// ClearCart empties the cart; the wishlist is untouched
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.state.Items = []domain.LineItem{}
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ctx, "Cart cleared", "")
}

// RemoveOrdered takes the ordered quantities out of the cart. A line that grew
// after the snapshot keeps the difference, and lines added since are left
// alone. "Cart cleared" is emitted only when nothing remains.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []domain.LineItem) {
	s.mu.Lock()
	for i := range ordered {
		key := ordered[i].Key()
		j := s.state.IndexOf(key)
		if j < 0 {
			continue
		}
		s.state.Items[j].Quantity -= ordered[i].Quantity
		if s.state.Items[j].Quantity < 1 {
			s.removeLocked(key)
		}
	}
	s.persist(ctx)
	empty := len(s.state.Items) == 0
	s.mu.Unlock()

	if empty {
		s.notify(ctx, "Cart cleared", "")
	}
}

// AddToWishlist saves product unless it is already saved
func (s *Store) AddToWishlist(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	if !s.state.InWishlist(product.ID) {
		s.state.Wishlist = append(s.state.Wishlist, domain.WishlistEntry{Product: product})
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ctx, fmt.Sprintf("%s added to wishlist!", product.Name), "")
}

// RemoveFromWishlist deletes the saved product if present
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) {
	s.mu.Lock()
	for i, entry := range s.state.Wishlist {
		if entry.Product.ID == productID {
			s.state.Wishlist = append(s.state.Wishlist[:i], s.state.Wishlist[i+1:]...)
			break
		}
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ctx, "Removed from wishlist", "")
}

// IsInWishlist reports whether productID is saved
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.InWishlist(productID)
}

// CartTotal is Σ(price × quantity), recomputed on every call
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

// CartCount is Σ quantity, recomputed on every call
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Count()
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Key is the storage key this store persists under
func (s *Store) Key() string {
	return s.key
}

// Encode serializes state in the persisted layout
func Encode(state domain.State) ([]byte, error) {
	if state.Items == nil {
		state.Items = []domain.LineItem{}
	}
	if state.Wishlist == nil {
		state.Wishlist = []domain.WishlistEntry{}
	}
	return json.Marshal(state)
}

// Decode parses a persisted record. Missing sequences decode as empty ones.
func Decode(blob []byte) (domain.State, error) {
	var state domain.State
	if err := json.Unmarshal(blob, &state); err != nil {
		return domain.EmptyState(), fmt.Errorf("decode cart state: %w", err)
	}
	if state.Items == nil {
		state.Items = []domain.LineItem{}
	}
	if state.Wishlist == nil {
		state.Wishlist = []domain.WishlistEntry{}
	}
	return state, nil
}
