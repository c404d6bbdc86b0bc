package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/littleones/internal/cart/domain"
	"github.com/tair/littleones/internal/cart/storage"
	catalog "github.com/tair/littleones/internal/catalog/domain"
	"github.com/tair/littleones/internal/catalog/repository"
	"github.com/tair/littleones/internal/notify"
)

type fixture struct {
	store    *Store
	storage  *storage.Memory
	recorder *notify.Recorder
	products map[string]catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		storage:  storage.NewMemory(),
		recorder: notify.NewRecorder(100),
		products: make(map[string]catalog.Product),
	}
	for _, p := range repository.SeedProducts() {
		f.products[p.ID] = p
	}
	f.store = f.reopen()
	return f
}

func (f *fixture) reopen() *Store {
	return New(context.Background(), Options{
		Storage:   f.storage,
		SessionID: "tab-1",
		Notifier:  f.recorder,
	})
}

func TestAddItemMergesSameKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sweater := f.products["1"]

	f.store.AddItem(ctx, sweater, 2, "5", "Cream")
	f.store.AddItem(ctx, sweater, 1, "5", "Cream")

	state := f.store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, 135.0, f.store.CartTotal())
	assert.Equal(t, 3, f.store.CartCount())
}

func TestAddItemManyCallsSumQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leggings := f.products["6"]

	quantities := []int{1, 4, 2, 7}
	want := 0
	for _, q := range quantities {
		f.store.AddItem(ctx, leggings, q, "4T", "Sage")
		want += q
	}

	state := f.store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, want, state.Items[0].Quantity)
}

func TestAddItemDistinctKeysAppendInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.AddItem(ctx, f.products["1"], 1, "5", "Cream")
	f.store.AddItem(ctx, f.products["1"], 1, "5", "Sky")
	f.store.AddItem(ctx, f.products["1"], 1, "6", "Cream")
	f.store.AddItem(ctx, f.products["8"], 2, "M (4-6Y)", "Khaki")

	state := f.store.Snapshot()
	require.Len(t, state.Items, 4)
	assert.Equal(t, domain.LineKey{ProductID: "1", Size: "5", Color: "Sky"}, state.Items[1].Key())
	assert.Equal(t, domain.LineKey{ProductID: "8", Size: "M (4-6Y)", Color: "Khaki"}, state.Items[3].Key())
	assert.Equal(t, 45.0*3+22*2, f.store.CartTotal())
	assert.Equal(t, 5, f.store.CartCount())
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 1, "5", "Cream")
	f.store.AddItem(ctx, f.products["2"], 1, "2T", "Light Wash")

	f.store.RemoveItem(ctx, "1", "5", "Cream")

	state := f.store.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "2", state.Items[0].Product.ID)
}

func TestRemoveMissingItemLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
	before := f.store.Snapshot()

	f.store.RemoveItem(ctx, "1", "5", "Blush")
	f.store.RemoveItem(ctx, "99", "5", "Cream")

	assert.Equal(t, before, f.store.Snapshot())
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["5"], 1, "8", "Navy")

	f.store.UpdateQuantity(ctx, "5", "8", "Navy", 4)
	assert.Equal(t, 4, f.store.CartCount())
	assert.Equal(t, 340.0, f.store.CartTotal())

	f.store.UpdateQuantity(ctx, "5", "8", "Forest", 9)
	assert.Equal(t, 4, f.store.CartCount(), "unknown line is a no-op")
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		viaUpdate := newFixture(t)
		viaRemove := newFixture(t)
		ctx := context.Background()
		for _, f := range []*fixture{viaUpdate, viaRemove} {
			f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
			f.store.AddItem(ctx, f.products["3"], 1, "6", "Rainbow")
		}

		viaUpdate.store.UpdateQuantity(ctx, "1", "5", "Cream", q)
		viaRemove.store.RemoveItem(ctx, "1", "5", "Cream")

		assert.Equal(t, viaRemove.store.Snapshot(), viaUpdate.store.Snapshot(), "quantity %d", q)
		assert.Equal(t, viaRemove.recorder.Titles("tab-1"), viaUpdate.recorder.Titles("tab-1"))
	}
}

func TestClearCartKeepsWishlist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
	f.store.AddToWishlist(ctx, f.products["7"])

	f.store.ClearCart(ctx)

	state := f.store.Snapshot()
	assert.Empty(t, state.Items)
	assert.NotNil(t, state.Items)
	assert.Len(t, state.Wishlist, 1)
	assert.Equal(t, 0.0, f.store.CartTotal())
	assert.Equal(t, 0, f.store.CartCount())
}

func TestRemoveOrderedKeepsLaterAdditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
	f.store.AddItem(ctx, f.products["3"], 1, "6", "Rainbow")
	ordered := f.store.Snapshot().Items

	f.store.AddItem(ctx, f.products["1"], 1, "5", "Cream")
	f.store.AddItem(ctx, f.products["5"], 1, "2T", "Sage")
	f.store.RemoveOrdered(ctx, ordered)

	state := f.store.Snapshot()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "1", state.Items[0].Product.ID)
	assert.Equal(t, 1, state.Items[0].Quantity)
	assert.Equal(t, "5", state.Items[1].Product.ID)
	assert.NotContains(t, f.recorder.Titles("tab-1"), "Cart cleared")

	assert.Equal(t, state, f.reopen().Snapshot())
}

func TestRemoveOrderedEmptiesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
	f.store.AddToWishlist(ctx, f.products["2"])

	f.store.RemoveOrdered(ctx, f.store.Snapshot().Items)

	assert.Zero(t, f.store.CartCount())
	assert.Len(t, f.store.Snapshot().Wishlist, 1)
	titles := f.recorder.Titles("tab-1")
	assert.Equal(t, "Cart cleared", titles[len(titles)-1])
}

func TestWishlist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.AddToWishlist(ctx, f.products["3"])
	f.store.AddToWishlist(ctx, f.products["5"])
	f.store.AddToWishlist(ctx, f.products["3"])

	state := f.store.Snapshot()
	require.Len(t, state.Wishlist, 2)
	assert.Equal(t, "3", state.Wishlist[0].Product.ID)
	assert.True(t, f.store.IsInWishlist("5"))
	assert.False(t, f.store.IsInWishlist("1"))

	f.store.RemoveFromWishlist(ctx, "3")
	f.store.RemoveFromWishlist(ctx, "42")

	assert.False(t, f.store.IsInWishlist("3"))
	assert.Len(t, f.store.Snapshot().Wishlist, 1)
}

func TestNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.AddItem(ctx, f.products["1"], 1, "5", "Cream")
	f.store.UpdateQuantity(ctx, "1", "5", "Cream", 3)
	f.store.AddToWishlist(ctx, f.products["2"])
	f.store.RemoveFromWishlist(ctx, "2")
	f.store.RemoveItem(ctx, "1", "5", "Cream")
	f.store.ClearCart(ctx)

	assert.Equal(t, []string{
		"Cozy Cloud Sweater added to bag!",
		"Adventure Denim Overalls added to wishlist!",
		"Removed from wishlist",
		"Item removed from bag",
		"Cart cleared",
	}, f.recorder.Titles("tab-1"))

	first := f.recorder.Recent("tab-1")[0]
	assert.Equal(t, "Size: 5 • Color: Cream", first.Description)
	assert.Equal(t, notify.KindSuccess, first.Kind)
}

func TestDerivedValuesAreStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["6"], 3, "5", "Black")
	f.store.AddItem(ctx, f.products["7"], 2, "2T", "Blue Moons")

	total := f.store.CartTotal()
	assert.Equal(t, total, f.store.CartTotal())
	assert.Equal(t, 28.0*3+42*2, total)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["4"], 2, "3-6M", "Mint")
	f.store.AddToWishlist(ctx, f.products["8"])

	reopened := f.reopen()

	assert.Equal(t, f.store.Snapshot(), reopened.Snapshot())
	assert.Equal(t, 76.0, reopened.CartTotal())
	assert.True(t, reopened.IsInWishlist("8"))
}

func TestMalformedRecordFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	for _, blob := range []string{"{not json", `"cart"`, `{"items": 5}`, "null", `{}`} {
		s := storage.NewMemory()
		require.NoError(t, s.Set(ctx, DefaultKey, []byte(blob)))

		st := New(ctx, Options{Storage: s})

		assert.Equal(t, domain.EmptyState(), st.Snapshot(), "blob %q", blob)
	}
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestStorageFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	st := New(ctx, Options{Storage: failingStorage{}})
	product := repository.SeedProducts()[0]

	st.AddItem(ctx, product, 1, "5", "Cream")

	assert.Equal(t, 1, st.CartCount())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 2, "5", "Cream")
	f.store.AddItem(ctx, f.products["3"], 1, "8", "Rainbow")
	f.store.AddToWishlist(ctx, f.products["5"])
	original := f.store.Snapshot()

	blob, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(blob)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
	assert.JSONEq(t, string(blob), mustEncode(t, decoded))
}

func TestEncodeLayout(t *testing.T) {
	blob, err := Encode(domain.State{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"wishlist":[]}`, string(blob))
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddItem(ctx, f.products["1"], 1, "5", "Cream")

	snap := f.store.Snapshot()
	snap.Items[0].Quantity = 50

	assert.Equal(t, 1, f.store.CartCount())
}

func mustEncode(t *testing.T, state domain.State) string {
	t.Helper()
	blob, err := Encode(state)
	require.NoError(t, err)
	return string(blob)
}
