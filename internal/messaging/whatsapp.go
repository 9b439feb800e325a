package messaging

import (
	"net/url"
	"strings"

	"sanfeliz/internal/order"
)

const greeting = "¡Hola! Me gustaría ordenar:"

// Message joins summary lines into the plain-text WhatsApp order.
func Message(lines []order.Line) string {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString("\n")

	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
	}
	return b.String()
}

// DeepLink builds the wa.me URL that opens a chat with text prefilled.
// Spaces are sent as %20, like encodeURIComponent.
func DeepLink(phone, text string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)

	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}
