package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanfeliz/internal/catalog"
	"sanfeliz/internal/order"
)

var product = catalog.Product{
	ID:    "3",
	Name:  "Desayuno Romántico (Para 2)",
	Price: 44990,
	Type:  catalog.TypeDouble,
	Options: map[catalog.Category][]catalog.Option{
		catalog.HotBeverage: {{ID: "t1", Name: "Café"}, {ID: "t2", Name: "Té"}},
	},
}

func TestOpenGetClose(t *testing.T) {
	st := NewStore(order.DefaultConfig(), 0)

	s := st.Open(product)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, SubmissionIdle, s.Submission)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Close(s.ID))
	assert.Equal(t, order.StateClosed, s.Engine.State())

	_, err = st.Get(s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, st.Close(s.ID), ErrNotFound)
}

func TestReopenStartsEmpty(t *testing.T) {
	st := NewStore(order.DefaultConfig(), 0)

	first := st.Open(product)
	first.Engine.AdjustCount(catalog.HotBeverage, "t1", 1)
	require.NoError(t, st.Close(first.ID))

	second := st.Open(product)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 0, second.Engine.Count(catalog.HotBeverage, "t1"))
}

func TestExpiry(t *testing.T) {
	st := NewStore(order.DefaultConfig(), time.Minute)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	a := st.Open(product)
	now = now.Add(30 * time.Second)
	b := st.Open(product)

	now = now.Add(45 * time.Second)
	_, err := st.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Get(b.ID)
	assert.NoError(t, err)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 0, st.Len())
}

func TestActivityExtendsExpiry(t *testing.T) {
	st := NewStore(order.DefaultConfig(), time.Hour)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	s := st.Open(product)
	for i := 0; i < 3; i++ {
		now = now.Add(50 * time.Minute)
		_, err := st.Get(s.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, st.Sweep())

	now = now.Add(61 * time.Minute)
	assert.Equal(t, 1, st.Sweep())
}

func TestConcurrentAdjustStaysBounded(t *testing.T) {
	st := NewStore(order.DefaultConfig(), 0)
	s := st.Open(product)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "t1"
			if i%2 == 0 {
				id = "t2"
			}
			s.Do(func(s *Session) { s.Engine.AdjustCount(catalog.HotBeverage, id, 1) })
		}(i)
	}
	wg.Wait()

	total := s.Engine.Count(catalog.HotBeverage, "t1") + s.Engine.Count(catalog.HotBeverage, "t2")
	assert.Equal(t, 2, total)
}
