package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Schedule registers the daily digest on a cron runner pinned to the store's
// timezone. The spec is standard 5-field cron, e.g. "0 20 * * *" for 20:00.
// Job failures are logged; they never stop the scheduler or the process.
func Schedule(svc *Service, spec, timezone string, log zerolog.Logger) (*cron.Cron, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := svc.GenerateDaily(ctx)
		if err != nil {
			log.Error().Err(err).Msg("daily digest run failed")
			return
		}
		log.Info().
			Int("scanned", report.Scanned).
			Int("flagged", report.Flagged).
			Bool("sent", report.Sent).
			Msg("daily digest run finished")
	})
	if err != nil {
		return nil, fmt.Errorf("schedule daily digest: %w", err)
	}
	return c, nil
}
