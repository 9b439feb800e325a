package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanfeliz/internal/checkout"
)

func seedOrders(t *testing.T, totals map[string][]int64) *checkout.InMemoryRepository {
	t.Helper()
	repo := checkout.NewInMemoryRepository()
	for product, list := range totals {
		for i, total := range list {
			channel := checkout.ChannelCheckout
			if i%2 == 1 {
				channel = checkout.ChannelWhatsApp
			}
			require.NoError(t, repo.Save(context.Background(), &checkout.Order{
				ProductID:   product,
				ProductName: "Producto " + product,
				Total:       total,
				Channel:     channel,
			}))
		}
	}
	return repo
}

func TestReport(t *testing.T) {
	repo := seedOrders(t, map[string][]int64{
		"1": {29990, 36980, 29990},
		"4": {19990},
	})

	report, err := NewService(repo, 0).Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Overall.Orders)
	assert.Equal(t, int64(29990+36980+29990+19990), report.Overall.Revenue)
	assert.Equal(t, int64(29990), report.Overall.MedianTicket)
	assert.NotNil(t, report.Overall.Since)

	require.Len(t, report.Products, 2)
	top := report.Products[0]
	assert.Equal(t, "1", top.ProductID)
	assert.Equal(t, 3, top.Orders)
	assert.Equal(t, int64(32320), top.AvgTicket)
	assert.Equal(t, 2, top.ByChannel["checkout"])
	assert.Equal(t, 1, top.ByChannel["whatsapp"])
}

func TestMedianEvenCount(t *testing.T) {
	repo := seedOrders(t, map[string][]int64{
		"2": {39990, 19990, 29990, 49990},
	})

	report, err := NewService(repo, 0).Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(34990), report.Overall.MedianTicket)
	require.Len(t, report.Products, 1)
	assert.Equal(t, int64(34990), report.Products[0].MedianTicket)
}

func TestReportEmpty(t *testing.T) {
	report, err := NewService(checkout.NewInMemoryRepository(), 10).Report(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Overall.Orders)
	assert.Zero(t, report.Overall.MedianTicket)
	assert.Empty(t, report.Products)
}
