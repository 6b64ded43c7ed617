// Package summary builds the daily customs digest: it scans every tracked
// shipment, flags the ones held for customs, in alert, or otherwise stuck,
// and sends the digest over WhatsApp to the technical contact.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge/format"
	"github.com/storeops/chatbridge/tracking"
)

// TrackSource is the slice of the tracking client the digest needs.
type TrackSource interface {
	ListTrackings(ctx context.Context) ([]tracking.TrackingSummary, error)
	GetTrackInfo(ctx context.Context, refs []tracking.TrackingRef) ([]tracking.TrackInfo, error)
}

// Sender delivers the digest message.
type Sender interface {
	SendText(ctx context.Context, phone, text string) error
}

type Service struct {
	tracks    TrackSource
	sender    Sender
	recipient string
	log       zerolog.Logger
}

func NewService(tracks TrackSource, sender Sender, recipient string, log zerolog.Logger) *Service {
	return &Service{
		tracks:    tracks,
		sender:    sender,
		recipient: recipient,
		log:       log.With().Str("component", "summary").Logger(),
	}
}

// Report is the outcome of one digest run.
type Report struct {
	Scanned int
	Flagged int
	Sent    bool
}

// GenerateDaily scans all tracked shipments, classifies them, and sends the
// digest when anything needs attention. A run with nothing to report sends
// no message.
func (s *Service) GenerateDaily(ctx context.Context) (Report, error) {
	summaries, err := s.tracks.ListTrackings(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list trackings: %w", err)
	}
	s.log.Info().Int("packages", len(summaries)).Msg("scanning tracked shipments")

	details, err := s.tracks.GetTrackInfo(ctx, tracking.Refs(summaries))
	if err != nil {
		return Report{Scanned: len(summaries)}, fmt.Errorf("fetch shipment details: %w", err)
	}

	var flagged []tracking.TrackInfo
	for _, info := range details {
		if tracking.ClassifyInfo(info) != tracking.CategoryNone {
			flagged = append(flagged, info)
		}
	}
	report := Report{Scanned: len(summaries), Flagged: len(flagged)}
	if len(flagged) == 0 {
		s.log.Info().Msg("no shipment needs attention")
		return report, nil
	}

	msg := FormatMessage(flagged)
	if err := s.sender.SendText(ctx, s.recipient, msg); err != nil {
		return report, fmt.Errorf("send digest: %w", err)
	}
	report.Sent = true
	s.log.Info().Int("flagged", len(flagged)).Msg("daily digest sent")
	return report, nil
}

// FormatMessage renders the digest grouped by category. Shipments returning
// to the sender count as problems; the first customs event text doubles as
// the shared status line for the customs section.
func FormatMessage(flagged []tracking.TrackInfo) string {
	if len(flagged) == 0 {
		return "Nenhum pacote com pendências."
	}

	var customs, alerts, problems []string
	var customsStatusLine string

	for _, info := range flagged {
		number := info.Number
		if number == "" {
			number = "N/A"
		}
		event := format.TranslateEvent(info.Detail.LatestEvent.Description)

		switch tracking.ClassifyInfo(info) {
		case tracking.CategoryCustomsHeld:
			customs = append(customs, fmt.Sprintf("*%s*", number))
			if customsStatusLine == "" {
				customsStatusLine = event
			}
		case tracking.CategoryAlert:
			alerts = append(alerts, fmt.Sprintf("*%s*: %s", number, event))
		case tracking.CategoryReturning, tracking.CategoryProblem:
			problems = append(problems, fmt.Sprintf("*%s*: %s", number, event))
		}
	}

	var sb strings.Builder
	sb.WriteString("📦 *Resumo de Pacotes*\n")
	if len(customs) > 0 {
		sb.WriteString("\n💰 *Taxas Pendentes:*\n")
		sb.WriteString(strings.Join(customs, "\n"))
		if customsStatusLine != "" {
			fmt.Fprintf(&sb, "\n\n_Status: %s_", customsStatusLine)
		}
	}
	if len(alerts) > 0 {
		sb.WriteString("\n\n⚠️ *Em Alerta:*\n")
		sb.WriteString(strings.Join(alerts, "\n"))
	}
	if len(problems) > 0 {
		sb.WriteString("\n\n❌ *Com Problemas:*\n")
		sb.WriteString(strings.Join(problems, "\n"))
	}
	return sb.String()
}
