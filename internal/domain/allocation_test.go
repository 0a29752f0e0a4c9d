package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tablesFixture() []Table {
	// 2 малых стола (2 места) и 1 большой (4 места)
	return []Table{
		{ID: 1, RestaurantID: 10, Seats: 2},
		{ID: 2, RestaurantID: 10, Seats: 2},
		{ID: 3, RestaurantID: 10, Seats: 4},
	}
}

func TestGroupFreeTables(t *testing.T) {
	t.Run("NoBookedTables", func(t *testing.T) {
		free := GroupFreeTables(tablesFixture(), nil)
		assert.Equal(t, []int64{1, 2}, free[2])
		assert.Equal(t, []int64{3}, free[4])
		assert.Equal(t, 3, free.Count())
		assert.Equal(t, 8, free.TotalSeats())
	})

	t.Run("ExcludesBookedTables", func(t *testing.T) {
		booked := map[int64]struct{}{1: {}, 3: {}}
		free := GroupFreeTables(tablesFixture(), booked)
		assert.Equal(t, []int64{2}, free[2])
		assert.Empty(t, free[4])
		assert.Equal(t, 1, free.Count())
	})

	t.Run("OrdersIDsAscending", func(t *testing.T) {
		tables := []Table{
			{ID: 7, Seats: 2},
			{ID: 3, Seats: 2},
			{ID: 5, Seats: 2},
		}
		free := GroupFreeTables(tables, nil)
		assert.Equal(t, []int64{3, 5, 7}, free[2])
	})
}

func TestAllocate(t *testing.T) {
	t.Run("PartyOfFiveTakesLargeThenSmall", func(t *testing.T) {
		free := GroupFreeTables(tablesFixture(), nil)
		ids, err := Allocate(free, 5)
		require.NoError(t, err)
		// Большой стол первым, затем малый с наименьшим ID
		assert.Equal(t, []int64{3, 1}, ids)
	})

	t.Run("SmallPartyPrefersSmallTable", func(t *testing.T) {
		free := GroupFreeTables(tablesFixture(), nil)
		ids, err := Allocate(free, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("FallsBackToSmallTablesWhenNoLargeLeft", func(t *testing.T) {
		// Компания из 4 человек, свободны только два малых стола
		free := FreeTables{2: {4, 5}}
		ids, err := Allocate(free, 4)
		require.NoError(t, err)
		assert.Equal(t, []int64{4, 5}, ids)
	})

	t.Run("FallsBackToLargeTableForSmallParty", func(t *testing.T) {
		// Малых столов нет - компания из 1 человека получает большой стол
		free := FreeTables{4: {3}}
		ids, err := Allocate(free, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, ids)
	})

	t.Run("CapacitySufficiency", func(t *testing.T) {
		free := GroupFreeTables(tablesFixture(), nil)
		for party := 1; party <= free.TotalSeats(); party++ {
			require.True(t, free.CanSeat(party), "party=%d", party)
			ids, err := Allocate(free, party)
			require.NoError(t, err, "party=%d", party)

			seats := 0
			for _, id := range ids {
				for _, table := range tablesFixture() {
					if table.ID == id {
						seats += table.Seats
					}
				}
			}
			assert.GreaterOrEqual(t, seats, party, "party=%d", party)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		free := FreeTables{2: {1, 2, 8}, 4: {3, 9}, 6: {11}}
		first, err := Allocate(free, 13)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			again, err := Allocate(free, 13)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		free := FreeTables{2: {1, 2}, 4: {3}}
		_, err := Allocate(free, 6)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, free[2])
		assert.Equal(t, []int64{3}, free[4])
	})

	t.Run("InsufficientCapacityTerminates", func(t *testing.T) {
		free := FreeTables{2: {1, 2}, 4: {3}}
		assert.False(t, free.CanSeat(9))
		_, err := Allocate(free, 9)
		require.ErrorIs(t, err, ErrInsufficientCapacity)
	})

	t.Run("EmptyFreeSet", func(t *testing.T) {
		_, err := Allocate(FreeTables{}, 2)
		require.ErrorIs(t, err, ErrInsufficientCapacity)
	})

	t.Run("InvalidPartySize", func(t *testing.T) {
		_, err := Allocate(FreeTables{2: {1}}, 0)
		require.ErrorIs(t, err, ErrInvalidPartySize)
		_, err = Allocate(FreeTables{2: {1}}, -3)
		require.ErrorIs(t, err, ErrInvalidPartySize)
	})

	t.Run("GreedyIsNotOptimalButSufficient", func(t *testing.T) {
		// Компания из 4: жадная политика возьмет большой стол на 6,
		// а не два малых - поведение сохранено намеренно
		free := FreeTables{2: {1, 2}, 6: {3}}
		ids, err := Allocate(free, 4)
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, ids)
	})
}

func TestRestaurantIsOpenAt(t *testing.T) {
	r := &Restaurant{OpenTime: "09:00", CloseTime: "22:00"}

	cases := []struct {
		name string
		at   string
		want bool
	}{
		{"ExactlyAtOpen", "2025-11-04T09:00:00Z", true},
		{"ExactlyAtClose", "2025-11-04T22:00:00Z", true},
		{"MinuteBeforeOpen", "2025-11-04T08:59:00Z", false},
		{"MinuteAfterClose", "2025-11-04T22:01:00Z", false},
		{"MidDay", "2025-11-04T19:00:00Z", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at, err := time.Parse(time.RFC3339, tc.at)
			require.NoError(t, err)
			open, err := r.IsOpenAt(at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, open)
		})
	}
}
