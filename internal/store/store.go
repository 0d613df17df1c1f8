// Package store persists synthesis records to a durable backend when one
// is configured and reachable, and to an in-process table otherwise.
package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/internal/repo/memory"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

var ErrInvalidRecord = errors.New("invalid record")

// Durable is an external database. Implementations report outages through
// Result instead of returning errors.
type Durable interface {
	Name() string
	Insert(ctx context.Context, rec types.SynthesisRecord) Result
	Find(ctx context.Context, id string) Result
	Close(ctx context.Context) error
}

type Store struct {
	durable Durable
	mem     *memory.RecordRepo
	log     zerolog.Logger
}

// New returns a Store. A nil durable selects in-memory mode.
func New(durable Durable, mem *memory.RecordRepo, log zerolog.Logger) *Store {
	return &Store{durable: durable, mem: mem, log: log}
}

// Mode names the backend new records are written to first.
func (s *Store) Mode() string {
	if s.durable == nil {
		return "memory"
	}
	return s.durable.Name()
}

// Put stores rec and returns its id. Only an invalid record is an error;
// a durable-store outage diverts the record to memory.
func (s *Store) Put(ctx context.Context, rec types.SynthesisRecord) (string, error) {
	if err := validate(rec); err != nil {
		return "", err
	}
	if s.durable != nil {
		res := s.durable.Insert(ctx, rec)
		if res.Status == OK {
			s.log.Debug().Str("backend", s.durable.Name()).Str("id", res.ID).Msg("record saved")
			return res.ID, nil
		}
		s.log.Warn().Err(res.Err).Str("backend", s.durable.Name()).
			Msg("durable store unavailable, falling back to in-memory storage")
	}
	id := s.mem.Save(rec)
	s.log.Debug().Str("backend", "memory").Str("id", id).Msg("record saved")
	return id, nil
}

// Get looks in the durable store first, then in memory.
func (s *Store) Get(ctx context.Context, id string) (types.SynthesisRecord, bool) {
	if s.durable != nil {
		res := s.durable.Find(ctx, id)
		switch res.Status {
		case OK:
			return res.Record, true
		case Unavailable:
			s.log.Warn().Err(res.Err).Str("backend", s.durable.Name()).Str("id", id).
				Msg("durable lookup failed, falling back to in-memory storage")
		}
	}
	return s.mem.Get(id)
}

func (s *Store) Close(ctx context.Context) error {
	if s.durable == nil {
		return nil
	}
	return s.durable.Close(ctx)
}

func validate(rec types.SynthesisRecord) error {
	var missing []string
	if rec.Text == "" {
		missing = append(missing, "text")
	}
	if rec.Language == "" {
		missing = append(missing, "language")
	}
	if rec.Voice == "" {
		missing = append(missing, "voice")
	}
	if rec.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidRecord, "missing %v", missing)
	}
	if !rec.Status.Valid() {
		return errors.Wrapf(ErrInvalidRecord, "unknown status %q", rec.Status)
	}
	return nil
}
