// Package format turns raw provider fields into the pt-BR display strings
// used in chat replies and the daily digest. Everything here is
// deterministic and free of network calls.
package format

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// orderStatus, paymentStatus and shippingStatus map provider codes to the
// wording customers see. Unknown codes pass through unchanged.
var orderStatus = map[string]string{
	"open":      "Aberto",
	"closed":    "Concluído",
	"cancelled": "Cancelado",
}

var paymentStatus = map[string]string{
	"pending":    "Pagamento pendente",
	"authorized": "Pagamento autorizado",
	"paid":       "Pago",
	"voided":     "Pagamento cancelado",
	"refunded":   "Reembolsado",
	"abandoned":  "Abandonado",
}

var shippingStatus = map[string]string{
	"unpacked":  "Preparando envio",
	"unshipped": "Aguardando envio",
	"shipped":   "Enviado",
	"delivered": "Entregue",
}

// Formatter carries a logger only so unmapped codes leave a trace; the
// formatting itself is pure.
type Formatter struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Formatter {
	return &Formatter{log: log}
}

func (f *Formatter) OrderStatus(code string) string {
	return f.lookup(orderStatus, "order_status", code)
}

func (f *Formatter) PaymentStatus(code string) string {
	return f.lookup(paymentStatus, "payment_status", code)
}

func (f *Formatter) ShippingStatus(code string) string {
	return f.lookup(shippingStatus, "shipping_status", code)
}

func (f *Formatter) lookup(table map[string]string, family, code string) string {
	if code == "" {
		return ""
	}
	if display, ok := table[strings.ToLower(code)]; ok {
		return display
	}
	f.log.Debug().Str("family", family).Str("code", code).Msg("unmapped status code")
	return code
}

// Currency renders integer minor units (centavos) as a pt-BR amount, e.g.
// 123456 -> "R$ 1.234,56".
func Currency(minorUnits int64) string {
	return ptBR.Sprintf("R$ %.2f", float64(minorUnits)/100)
}

// Date renders an ISO timestamp as the short local form used in chat.
// The input string comes through unchanged when it cannot be parsed.
func Date(iso string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}
	return iso
}
