package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/chatbridge/commerce"
	"github.com/storeops/chatbridge/format"
	"github.com/storeops/chatbridge/tracking"
	"github.com/storeops/chatbridge/webhook"
)

type fakeOrders struct {
	order *commerce.Order
	err   error
	asked []string
}

func (f *fakeOrders) GetOrderByNumber(_ context.Context, number string) (*commerce.Order, error) {
	f.asked = append(f.asked, number)
	return f.order, f.err
}

type fakeTracks struct {
	infos []tracking.TrackInfo
	err   error
}

func (f *fakeTracks) GetTrackInfo(context.Context, []tracking.TrackingRef) ([]tracking.TrackInfo, error) {
	return f.infos, f.err
}

func textEvent(text string) webhook.Event {
	return webhook.Event{Sender: "5511999990000", Message: webhook.Message{Conversation: text}}
}

func newBot(orders *fakeOrders, tracks *fakeTracks) *Bot {
	return New(orders, tracks, format.New(zerolog.Nop()), zerolog.Nop())
}

func TestHandleTextWithoutNumberAsksForOne(t *testing.T) {
	b := newBot(&fakeOrders{}, &fakeTracks{})

	reply, err := b.HandleText(context.Background(), textEvent("oi, tudo bem?"))
	require.NoError(t, err)
	assert.Equal(t, helpReply, reply)
}

func TestHandleTextLooksUpOrder(t *testing.T) {
	orders := &fakeOrders{order: &commerce.Order{
		Number:                 2913,
		Status:                 "open",
		PaymentStatus:          "paid",
		ShippingStatus:         "shipped",
		ShippingTrackingNumber: "BR123456789",
		Total:                  123456,
		CreatedAt:              time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}}
	tracks := &fakeTracks{infos: []tracking.TrackInfo{{
		Number: "BR123456789",
		Detail: tracking.Detail{LatestEvent: tracking.LatestEvent{Description: "Import customs clearance complete"}},
	}}}
	b := newBot(orders, tracks)

	reply, err := b.HandleText(context.Background(), textEvent("qual o status do pedido #2913?"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2913"}, orders.asked)
	assert.Contains(t, reply, "*Pedido #2913*")
	assert.Contains(t, reply, "Status: Aberto")
	assert.Contains(t, reply, "Pagamento: Pago")
	assert.Contains(t, reply, "Envio: Enviado")
	assert.Contains(t, reply, "R$ 1.234,56")
	assert.Contains(t, reply, "BR123456789")
	assert.Contains(t, reply, "Desembaraço aduaneiro concluído")
}

func TestHandleTextOrderNotFound(t *testing.T) {
	b := newBot(&fakeOrders{}, &fakeTracks{})

	reply, err := b.HandleText(context.Background(), textEvent("pedido 9999"))
	require.NoError(t, err)
	assert.Contains(t, reply, "Não encontramos o pedido *#9999*")
}

func TestHandleTextLookupFailurePropagates(t *testing.T) {
	b := newBot(&fakeOrders{err: errors.New("platform down")}, &fakeTracks{})

	_, err := b.HandleText(context.Background(), textEvent("pedido 2913"))
	require.Error(t, err, "the dispatcher turns this into the apology reply")
}

func TestHandleTextTrackingOutageStillReplies(t *testing.T) {
	orders := &fakeOrders{order: &commerce.Order{
		Number:                 2913,
		Status:                 "open",
		ShippingTrackingNumber: "BR123",
	}}
	b := newBot(orders, &fakeTracks{err: errors.New("tracking down")})

	reply, err := b.HandleText(context.Background(), textEvent("pedido 2913"))
	require.NoError(t, err)
	assert.Contains(t, reply, "*Pedido #2913*")
	assert.NotContains(t, reply, "Última movimentação")
}

func TestAcknowledge(t *testing.T) {
	h := Acknowledge("Recebemos sua imagem!")
	reply, err := h.Handle(context.Background(), webhook.Event{})
	require.NoError(t, err)
	assert.Equal(t, "Recebemos sua imagem!", reply)
}
