package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"crunchy-cruise/internal/delivery"
	"crunchy-cruise/internal/geocode"
	"crunchy-cruise/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps a MemoryStore and fails saves on demand.
type flakyStore struct {
	*MemoryStore
	failSave bool
	loadErr  error
	saves    int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: NewMemoryStore()}
}

func (f *flakyStore) Load(ctx context.Context, key string) (*Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryStore.Load(ctx, key)
}

func (f *flakyStore) Save(ctx context.Context, key string, snap Snapshot) error {
	if f.failSave {
		return errors.New("disk full")
	}
	f.saves++
	return f.MemoryStore.Save(ctx, key, snap)
}

type staticGeocoder struct{ result geocode.Result }

func (g staticGeocoder) Resolve(ctx context.Context, address string) (geocode.Result, error) {
	return g.result, nil
}

func (g staticGeocoder) Reverse(ctx context.Context, at model.Coordinates) (string, error) {
	return "", geocode.ErrNotFound
}

var ringRoad = staticGeocoder{result: geocode.Result{
	Coordinates:      model.Coordinates{Lat: 7.4075, Lng: 3.9470},
	FormattedAddress: "Ring Road, Ibadan",
}}

func openSession(t *testing.T, store Store) *Session {
	t.Helper()
	s, err := Open(context.Background(), store, "session-1")
	require.NoError(t, err)
	return s
}

func TestOpen_NewSessionIsEmptyPickup(t *testing.T) {
	s := openSession(t, NewMemoryStore())

	assert.Equal(t, "session-1", s.Key())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, model.DefaultDeliveryInfo(), s.Delivery())
	assert.Zero(t, s.Total())
}

func TestOpen_LoadFailure(t *testing.T) {
	store := newFlakyStore()
	store.loadErr = errors.New("connection refused")

	_, err := Open(context.Background(), store, "session-1")
	assert.Error(t, err)
}

func TestSession_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := openSession(t, store)

	require.NoError(t, s.AddItem(ctx, "Ripe Plantain Chips", 4500, 2, ""))
	require.NoError(t, s.AddItem(ctx, "Ripe Plantain Chips", 4500, 1, ""))
	require.NoError(t, s.ToggleDelivery(ctx))
	assert.Equal(t, 3, store.saves)

	reopened := openSession(t, store)
	assert.Equal(t, s.Items(), reopened.Items())
	assert.Equal(t, int64(13500), reopened.Subtotal())
	assert.Equal(t, model.DeliveryStateAddressPending, reopened.Delivery().State)
}

func TestSession_SaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := openSession(t, store)
	require.NoError(t, s.AddItem(ctx, "Chin Chin", 1500, 2, ""))
	require.NoError(t, s.ToggleDelivery(ctx))
	require.NoError(t, s.ResolveAddress(ctx, ringRoad, "ring road"))

	items := s.Items()
	info := s.Delivery()
	store.failSave = true

	assert.Error(t, s.AddItem(ctx, "Peanut Burger", 1200, 1, ""))
	assert.Error(t, s.SetQuantity(ctx, "Chin Chin", 9))
	assert.Error(t, s.RemoveItem(ctx, "Chin Chin"))
	assert.Error(t, s.TogglePickup(ctx))
	assert.Error(t, s.Clear(ctx))
	_, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	assert.Error(t, err)

	assert.Equal(t, items, s.Items())
	assert.Equal(t, info, s.Delivery())
}

func TestSession_FailedTransitionIsNotSaved(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := openSession(t, store)

	_, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Zero(t, store.saves)
	assert.Equal(t, model.DefaultDeliveryInfo(), s.Delivery())
}

func TestSession_DeliveryFlowAndTotal(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, NewMemoryStore())
	require.NoError(t, s.AddItem(ctx, "Ripe Plantain Chips", 4500, 3, ""))

	require.NoError(t, s.ToggleDelivery(ctx))
	require.NoError(t, s.ResolveAddress(ctx, ringRoad, "ring road"))
	assert.Equal(t, int64(13500), s.Total())

	quote, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), quote.DeliveryChargeMinor)
	assert.Equal(t, int64(3000), s.DeliveryCharge())
	assert.Equal(t, int64(16500), s.Total())

	view := s.View()
	assert.Equal(t, int64(13500), view.Subtotal)
	assert.Equal(t, int64(16500), view.Total)
	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, model.DeliveryStateConfirmed, view.Delivery.State)

	require.NoError(t, s.TogglePickup(ctx))
	assert.Zero(t, s.DeliveryCharge())
	assert.Equal(t, int64(13500), s.Total())
}

func TestSession_TotalSaturates(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, NewMemoryStore())
	require.NoError(t, s.AddItem(ctx, "Gold Chin Chin", math.MaxInt64, 2, ""))
	require.NoError(t, s.ToggleDelivery(ctx))
	require.NoError(t, s.ResolveAddress(ctx, ringRoad, "ring road"))
	_, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	require.NoError(t, err)

	assert.Equal(t, int64(3000), s.DeliveryCharge())
	assert.Equal(t, int64(math.MaxInt64), s.Subtotal())
	assert.Equal(t, int64(math.MaxInt64), s.Total())
	assert.Equal(t, int64(math.MaxInt64), s.View().Total)
}

func TestSession_EditAddressDropsCharge(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, NewMemoryStore())
	require.NoError(t, s.ToggleDelivery(ctx))
	require.NoError(t, s.ResolveAddress(ctx, ringRoad, "ring road"))
	_, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	require.NoError(t, err)

	require.NoError(t, s.EditAddress(ctx, "Bodija"))

	assert.Equal(t, model.DeliveryStateAddressPending, s.Delivery().State)
	assert.Zero(t, s.DeliveryCharge())
}

func TestSession_ResolveDeviceLocation(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, NewMemoryStore())
	require.NoError(t, s.ToggleDelivery(ctx))

	at := model.Coordinates{Lat: 7.4, Lng: 3.9}
	require.NoError(t, s.ResolveDeviceLocation(ctx, ringRoad, &at))

	assert.Equal(t, "Location: 7.4000, 3.9000", s.Delivery().Address)
	assert.Equal(t, model.DeliveryStateLocationDetected, s.Delivery().State)
}

func TestSession_ClearResetsDelivery(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := openSession(t, store)
	require.NoError(t, s.AddItem(ctx, "Chin Chin", 1500, 2, ""))
	require.NoError(t, s.ToggleDelivery(ctx))
	require.NoError(t, s.ResolveAddress(ctx, ringRoad, "ring road"))
	_, err := s.ConfirmLocation(ctx, delivery.NewLocalCalculator(delivery.DefaultOrigin))
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	assert.True(t, s.IsEmpty())
	assert.Equal(t, model.DefaultDeliveryInfo(), s.Delivery())

	reopened := openSession(t, store)
	assert.True(t, reopened.IsEmpty())
	assert.Equal(t, model.DefaultDeliveryInfo(), reopened.Delivery())
}

func TestMemoryStore_IsolatesCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := Snapshot{Items: []model.LineItem{{ProductName: "A", UnitPriceMinor: 100, Quantity: 1}}}
	require.NoError(t, store.Save(ctx, "k", snap))
	snap.Items[0].Quantity = 7

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 1, loaded.Items[0].Quantity)

	missing, err := store.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
