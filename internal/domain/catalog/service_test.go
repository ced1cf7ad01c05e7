package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	err error
}

func (f *fakeRepo) Tickets(ctx context.Context) ([]TicketOption, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []TicketOption{
		{ID: 1, Title: "Regular", Price: decimal.NewFromInt(100), NumBooked: 12},
		{ID: 2, Title: "Reduced", Price: decimal.NewFromInt(60)},
	}, nil
}

func (f *fakeRepo) Beverages(ctx context.Context) ([]BeverageOption, error) {
	return []BeverageOption{{ID: 1, Title: "Flatrate", Price: decimal.NewFromInt(10)}}, nil
}

func (f *fakeRepo) Food(ctx context.Context) ([]FoodOption, error) {
	return []FoodOption{}, nil
}

func (f *fakeRepo) WorkShifts(ctx context.Context) ([]WorkShift, error) {
	return []WorkShift{
		{
			ID:    1,
			Title: "Bar",
			TimeSlots: []TimeSlot{
				{ID: 10, ShiftID: 1, Title: "Friday night", StartTime: time.Now(), NumNeeded: 4, NumBooked: 4},
				{ID: 11, ShiftID: 1, Title: "Saturday night", StartTime: time.Now(), NumNeeded: 4, NumBooked: 1},
			},
		},
	}, nil
}

func (f *fakeRepo) Materials(ctx context.Context) ([]Material, error) {
	return []Material{{ID: 1, Title: "Tent", NumNeeded: 3, NumBooked: 1}}, nil
}

func (f *fakeRepo) Professions(ctx context.Context) ([]Profession, error) {
	return []Profession{{ID: 1, Title: "Electrician"}}, nil
}

func TestContentAssemblesCatalog(t *testing.T) {
	svc := NewService(&fakeRepo{})

	content, err := svc.Content(context.Background())
	require.NoError(t, err)

	assert.Len(t, content.Tickets, 2)
	assert.Len(t, content.Beverages, 1)
	assert.Empty(t, content.Food)
	assert.Len(t, content.WorkShifts, 1)
	assert.False(t, content.Placeholder)

	slot, ok := content.TimeSlotByID(10)
	require.True(t, ok)
	assert.True(t, slot.IsFull())

	slot, ok = content.TimeSlotByID(11)
	require.True(t, ok)
	assert.False(t, slot.IsFull())

	_, ok = content.TimeSlotByID(99)
	assert.False(t, ok)
}

func TestContentPropagatesRepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")})

	_, err := svc.Content(context.Background())
	require.Error(t, err)
}

func TestPriceLookups(t *testing.T) {
	svc := NewService(&fakeRepo{})
	content, err := svc.Content(context.Background())
	require.NoError(t, err)

	assert.True(t, content.TicketPrice(1).Equal(decimal.NewFromInt(100)))
	assert.True(t, content.TicketPrice(-1).IsZero(), "unset sentinel must price to zero")
	assert.True(t, content.BeveragePrice(99).IsZero(), "unknown id must price to zero")
}

func TestNewPlaceholderCarriesSentinelPrices(t *testing.T) {
	p := NewPlaceholder()
	require.True(t, p.Placeholder)
	assert.True(t, p.TicketPrice(0).Equal(decimal.NewFromInt(-1)))
	assert.Empty(t, p.WorkShifts)
}
