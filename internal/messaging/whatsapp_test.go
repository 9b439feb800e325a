package messaging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanfeliz/internal/order"
)

func TestMessage(t *testing.T) {
	lines := []order.Line{
		{Label: "Producto", Value: "Bowl Energético"},
		{Label: "Notas adicionales", Value: "Ninguna"},
		{Label: "Total", Value: "$19.990"},
	}

	want := "¡Hola! Me gustaría ordenar:\n\nProducto: Bowl Energético\nNotas adicionales: Ninguna\nTotal: $19.990"
	assert.Equal(t, want, Message(lines))
}

func TestDeepLinkRoundTrip(t *testing.T) {
	text := "¡Hola! Me gustaría ordenar:\n\nTotal: $36.980 & más+"
	link := DeepLink("+56 9 6744-9210", text)

	require.Contains(t, link, "https://wa.me/+56967449210?text=")
	assert.NotContains(t, link, "+más")
	assert.Contains(t, link, "%20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))
}
