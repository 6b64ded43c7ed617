// Package webhook receives inbound gateway events, classifies them into one
// of a small set of message kinds, and routes each to its handler. Handlers
// are external collaborator boundaries (assistant replies, transcription,
// image analysis); the dispatcher owns only classification, routing, and the
// guarantee that no handler failure escapes to the transport layer.
package webhook

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler produces the reply for one classified event.
type Handler interface {
	Handle(ctx context.Context, ev Event) (reply string, err error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev Event) (string, error)

func (f HandlerFunc) Handle(ctx context.Context, ev Event) (string, error) {
	return f(ctx, ev)
}

// Sender delivers the reply back to the original sender.
type Sender interface {
	SendText(ctx context.Context, phone, text string) error
}

const (
	// fallbackReply answers payloads no handler matches.
	fallbackReply = "Desculpe, não consegui entender sua mensagem. Pode tentar novamente em texto?"
	// apologyReply answers when a handler fails.
	apologyReply = "Desculpe, tivemos um problema ao processar sua mensagem. Tente novamente em alguns instantes."
)

type Dispatcher struct {
	handlers map[Kind]Handler
	sender   Sender
	log      zerolog.Logger
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind]Handler),
		sender:   sender,
		log:      log.With().Str("component", "webhook").Logger(),
	}
}

// On registers the handler for one message kind.
func (d *Dispatcher) On(kind Kind, h Handler) {
	d.handlers[kind] = h
}

// Dispatch classifies the event, runs the matching handler, and sends its
// reply. Handler errors and panics are converted into an apology message;
// only the final send error is reported to the transport caller, and it is
// logged rather than re-raised there.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	eventID := uuid.NewString()
	kind := Classify(ev)
	log := d.log.With().Str("event_id", eventID).Str("kind", kind.String()).Str("sender", ev.Sender).Logger()
	log.Info().Msg("event received")

	if ev.FromMe {
		log.Debug().Msg("own message echoed back, ignoring")
		return nil
	}

	reply := fallbackReply
	if handler, ok := d.handlers[kind]; ok {
		out, err := d.run(ctx, handler, ev)
		if err != nil {
			log.Error().Err(err).Msg("handler failed")
			reply = apologyReply
		} else {
			reply = out
		}
	} else if kind != KindUnknown {
		log.Warn().Msg("no handler registered for kind")
	}

	if reply == "" {
		log.Debug().Msg("handler produced no reply")
		return nil
	}
	if err := d.sender.SendText(ctx, ev.Sender, reply); err != nil {
		log.Error().Err(err).Msg("reply delivery failed")
		return err
	}
	log.Info().Msg("reply sent")
	return nil
}

// run shields the dispatcher from handler panics.
func (d *Dispatcher) run(ctx context.Context, h Handler, ev Event) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, ev)
}
