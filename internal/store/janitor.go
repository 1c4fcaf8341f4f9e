package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Janitor calls st.Sweep every interval until ctx is done, then returns nil.
func Janitor(ctx context.Context, st Store, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n, err := st.Sweep(ctx)
			if err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("sweep sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("evicted", n).Msg("expired sessions dropped")
			}
		}
	}
}
