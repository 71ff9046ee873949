package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/store"
)

// Reserved is the fixed list of usernames provisioned before launch so the
// availability check reports them as taken.
var Reserved = []string{
	"admin",
	"root",
	"user",
	"muhannad",
	"guest",
	"test",
	"arabchat",
	"support",
}

// Run upserts every reserved username into the user store. Idempotent.
func Run(ctx context.Context, users store.UserStore, logger *zerolog.Logger) error {
	for _, name := range Reserved {
		username := strings.ToLower(name)
		if _, err := users.UpsertUser(ctx, username); err != nil {
			return fmt.Errorf("seed user %q: %w", username, err)
		}
		logger.Debug().Str("username", username).Msg("reserved username seeded")
	}

	logger.Info().Int("count", len(Reserved)).Msg("seed done")
	return nil
}
