package format

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStatusTables(t *testing.T) {
	f := New(zerolog.Nop())

	assert.Equal(t, "Aberto", f.OrderStatus("open"))
	assert.Equal(t, "Pago", f.PaymentStatus("paid"))
	assert.Equal(t, "Enviado", f.ShippingStatus("shipped"))
	assert.Equal(t, "Entregue", f.ShippingStatus("delivered"))

	// Unknown codes pass through unchanged.
	assert.Equal(t, "half_shipped", f.ShippingStatus("half_shipped"))
	assert.Equal(t, "", f.OrderStatus(""))
}

func TestCurrencyMinorUnits(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", Currency(123456))
	assert.Equal(t, "R$ 0,99", Currency(99))
	assert.Equal(t, "R$ 0,00", Currency(0))
	assert.Equal(t, "R$ 10,00", Currency(1000))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "15/03/2025 18:30", Date("2025-03-15T18:30:00-03:00"))
	assert.Equal(t, "not-a-date", Date("not-a-date"), "unparsable input passes through")
}

func TestTranslateEvent(t *testing.T) {
	assert.Equal(t, "Pagamento de taxas alfandegárias solicitado", TranslateEvent("Customs duties payment requested"))
	assert.Equal(t, "Retido na alfândega", TranslateEvent("Import customs retained"))
	// Unknown phrases survive untouched, including mixed content.
	assert.Equal(t, "Nota da transportadora: endereço incompleto", TranslateEvent("Carrier note: endereço incompleto"))
	assert.Equal(t, "Objeto postado", TranslateEvent("Objeto postado"))
}
