package repo

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/internal/config"
	"github.com/steveyiyo/tts-clone-backend/internal/repo/dynamo"
	"github.com/steveyiyo/tts-clone-backend/internal/repo/mongodb"
	"github.com/steveyiyo/tts-clone-backend/internal/store"
)

// OpenDurable picks the durable backend from the scheme of DATABASE_URI.
// It returns nil when no URI is configured. Nothing is dialed here.
func OpenDurable(cfg config.Config, log zerolog.Logger) (store.Durable, error) {
	if cfg.DatabaseURI == "" {
		return nil, nil
	}
	u, err := url.Parse(cfg.DatabaseURI)
	if err != nil {
		return nil, errors.Wrap(err, "parse DATABASE_URI")
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return mongodb.NewRecordRepo(mongodb.Options{
			URI:              cfg.DatabaseURI,
			Database:         cfg.DatabaseName,
			ConnectTimeout:   cfg.DatabaseConnectTimeout,
			OperationTimeout: cfg.DatabaseOperationTimeout,
		}, log.With().Str("backend", "mongodb").Logger()), nil
	case "dynamodb":
		tc, err := dynamo.ParseURI(cfg.DatabaseURI)
		if err != nil {
			return nil, err
		}
		svc, err := dynamo.NewClient(tc, cfg.DatabaseOperationTimeout)
		if err != nil {
			return nil, err
		}
		return dynamo.NewRecordRepo(svc, tc), nil
	}
	return nil, errors.Errorf("unsupported DATABASE_URI scheme %q", u.Scheme)
}
