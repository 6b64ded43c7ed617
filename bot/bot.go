// Package bot builds the customer-facing replies for classified webhook
// events. The text handler resolves order numbers against the commerce
// platform; media kinds get static acknowledgments here, with the AI
// pipelines living behind external collaborators.
package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge/commerce"
	"github.com/storeops/chatbridge/format"
	"github.com/storeops/chatbridge/tracking"
	"github.com/storeops/chatbridge/webhook"
)

// orderNumberPattern finds the order number a customer quotes, with or
// without a leading "#".
var orderNumberPattern = regexp.MustCompile(`#?(\d{3,})`)

const helpReply = "Olá! 👋 Para consultar seu pedido, me envie o número dele (ex: #2913)."

// OrderLookup is the slice of the commerce client the bot needs.
type OrderLookup interface {
	GetOrderByNumber(ctx context.Context, number string) (*commerce.Order, error)
}

// TrackLookup fetches carrier detail for an order's tracking code.
type TrackLookup interface {
	GetTrackInfo(ctx context.Context, refs []tracking.TrackingRef) ([]tracking.TrackInfo, error)
}

type Bot struct {
	orders    OrderLookup
	tracks    TrackLookup
	formatter *format.Formatter
	log       zerolog.Logger
}

func New(orders OrderLookup, tracks TrackLookup, formatter *format.Formatter, log zerolog.Logger) *Bot {
	return &Bot{
		orders:    orders,
		tracks:    tracks,
		formatter: formatter,
		log:       log.With().Str("component", "bot").Logger(),
	}
}

// HandleText resolves an order number in the message to a formatted order
// summary reply.
func (b *Bot) HandleText(ctx context.Context, ev webhook.Event) (string, error) {
	match := orderNumberPattern.FindStringSubmatch(ev.Message.Conversation)
	if match == nil {
		return helpReply, nil
	}
	number := match[1]

	order, err := b.orders.GetOrderByNumber(ctx, number)
	if err != nil {
		return "", fmt.Errorf("lookup order %s: %w", number, err)
	}
	if order == nil {
		return fmt.Sprintf("Não encontramos o pedido *#%s*. Confira o número e tente novamente. 🙏", number), nil
	}
	return b.orderReply(ctx, order), nil
}

func (b *Bot) orderReply(ctx context.Context, order *commerce.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 *Pedido #%d*\n", order.Number)
	fmt.Fprintf(&sb, "Status: %s\n", b.formatter.OrderStatus(order.Status))
	fmt.Fprintf(&sb, "Pagamento: %s\n", b.formatter.PaymentStatus(order.PaymentStatus))
	fmt.Fprintf(&sb, "Envio: %s\n", b.formatter.ShippingStatus(order.ShippingStatus))
	fmt.Fprintf(&sb, "Total: %s\n", format.Currency(order.Total))
	if !order.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Data: %s\n", order.CreatedAt.Format("02/01/2006"))
	}

	if code := order.ShippingTrackingNumber; code != "" {
		fmt.Fprintf(&sb, "Rastreio: %s\n", code)
		if event := b.latestCarrierEvent(ctx, code); event != "" {
			fmt.Fprintf(&sb, "Última movimentação: %s\n", format.TranslateEvent(event))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// latestCarrierEvent is best-effort: a tracking outage must not break the
// order reply.
func (b *Bot) latestCarrierEvent(ctx context.Context, code string) string {
	infos, err := b.tracks.GetTrackInfo(ctx, []tracking.TrackingRef{{Number: code}})
	if err != nil {
		b.log.Warn().Err(err).Str("tracking_number", code).Msg("carrier detail unavailable")
		return ""
	}
	if len(infos) == 0 {
		return ""
	}
	return infos[0].Detail.LatestEvent.Description
}

// Acknowledge returns a fixed-reply handler for media kinds whose real
// processing lives in an external service.
func Acknowledge(reply string) webhook.HandlerFunc {
	return func(context.Context, webhook.Event) (string, error) {
		return reply, nil
	}
}
