package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 12, 0, 0, 0, time.UTC)
}

func fixtureOrders() []Order {
	return []Order{
		{ID: "1", Number: "WF-0001", Status: StatusPending, CreatedAt: day(1), TotalAmount: 500,
			Items: []Item{{ProductTitle: "Classic Tee", Quantity: 1, UnitPrice: 500}}},
		{ID: "2", Number: "WF-0002", Status: StatusDelivered, CreatedAt: day(3), TotalAmount: 3000,
			Items: []Item{{ProductTitle: "Denim Jacket", Quantity: 1, UnitPrice: 3000}}},
		{ID: "3", Number: "WF-0003", Status: StatusCancelled, CreatedAt: day(2), TotalAmount: 1200,
			Items: []Item{{ProductTitle: "Canvas Sneakers", Quantity: 1, UnitPrice: 1200}}},
	}
}

func ids(list []Order) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}

func TestApplyFiltersDoesNotMutateSource(t *testing.T) {
	src := fixtureOrders()

	_ = ApplyFilters(src, Filters{Status: "pending", Search: "tee", Sort: SortAmountLow})
	_ = ApplyFilters(src, Filters{Sort: SortOldest})

	assert.Equal(t, []string{"1", "2", "3"}, ids(src))
}

func TestApplyFiltersStatus(t *testing.T) {
	src := fixtureOrders()

	assert.Equal(t, []string{"2"}, ids(ApplyFilters(src, Filters{Status: "delivered"})))
	assert.Len(t, ApplyFilters(src, Filters{Status: "all"}), 3)
	assert.Len(t, ApplyFilters(src, Filters{Status: ""}), 3)
	assert.Empty(t, ApplyFilters(src, Filters{Status: "shipped"}))
}

func TestApplyFiltersSearch(t *testing.T) {
	src := fixtureOrders()

	// product title, case-insensitive
	assert.Equal(t, []string{"2"}, ids(ApplyFilters(src, Filters{Search: "DENIM"})))
	// order number
	assert.Equal(t, []string{"3"}, ids(ApplyFilters(src, Filters{Search: "wf-0003"})))
	// no match
	assert.Empty(t, ApplyFilters(src, Filters{Search: "umbrella"}))
}

func TestApplyFiltersSort(t *testing.T) {
	src := fixtureOrders()

	assert.Equal(t, []string{"2", "3", "1"}, ids(ApplyFilters(src, Filters{Sort: SortNewest})))
	assert.Equal(t, []string{"1", "3", "2"}, ids(ApplyFilters(src, Filters{Sort: SortOldest})))
	assert.Equal(t, []string{"2", "3", "1"}, ids(ApplyFilters(src, Filters{Sort: SortAmountHigh})))
	assert.Equal(t, []string{"1", "3", "2"}, ids(ApplyFilters(src, Filters{Sort: SortAmountLow})))
}

func TestApplyFiltersCombined(t *testing.T) {
	src := append(fixtureOrders(), Order{
		ID: "4", Number: "WF-0004", Status: StatusPending, CreatedAt: day(5), TotalAmount: 250,
		Items: []Item{{ProductTitle: "Classic Tee", Quantity: 1, UnitPrice: 250}},
	})

	got := ApplyFilters(src, Filters{Status: "pending", Search: "tee", Sort: SortAmountHigh})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestApplyFiltersAmountFallback(t *testing.T) {
	// no backend total: amount comes from line totals
	src := []Order{
		{ID: "a", CreatedAt: day(1), Items: []Item{{ProductTitle: "X", Quantity: 2, UnitPrice: 100}}},
		{ID: "b", CreatedAt: day(2), TotalAmount: 150},
	}

	got := ApplyFilters(src, Filters{Sort: SortAmountHigh})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortOldest, ParseSortKey(" Oldest "))
	assert.Equal(t, SortAmountHigh, ParseSortKey("amount_high"))
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("garbage"))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusCancelled, ParseStatus("Cancelled"))
	assert.Equal(t, StatusCancelled, ParseStatus("canceled"))
	assert.Equal(t, StatusDelivered, ParseStatus(" delivered "))
	assert.Equal(t, StatusPending, ParseStatus(""))
	assert.Equal(t, StatusPending, ParseStatus("weird"))
}

func TestStatusCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusProcessing.Cancellable())
	assert.False(t, StatusShipped.Cancellable())
	assert.False(t, StatusDelivered.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}
