package audio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

var (
	ErrMissingID = errors.New("missing audio id")
	ErrNotFound  = errors.New("audio not found")
)

// RequiredFields of a create request, in the order they are reported.
var RequiredFields = []string{"text", "language", "voice"}

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

type RecordStore interface {
	Put(ctx context.Context, rec types.SynthesisRecord) (string, error)
	Get(ctx context.Context, id string) (types.SynthesisRecord, bool)
}

// Publisher receives every record right after it is stored.
type Publisher interface {
	Publish(rec types.SynthesisRecord)
}

type Service struct {
	Store RecordStore
	Base  string
	Feed  Publisher
	Now   func() time.Time
}

func NewService(store RecordStore, base string, feed Publisher) *Service {
	return &Service{Store: store, Base: base, Feed: feed, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, text, language, voice string) (types.SynthesisRecord, error) {
	var missing []string
	for i, v := range []string{text, language, voice} {
		if v == "" {
			missing = append(missing, RequiredFields[i])
		}
	}
	if len(missing) > 0 {
		return types.SynthesisRecord{}, &ValidationError{Missing: missing}
	}

	now := s.Now().UTC().Truncate(time.Millisecond)
	rec := types.SynthesisRecord{
		Text:      text,
		Language:  language,
		Voice:     voice,
		URL:       AudioURL(s.Base, voice, language, now),
		Timestamp: now,
		Status:    types.StatusCompleted,
	}
	id, err := s.Store.Put(ctx, rec)
	if err != nil {
		return types.SynthesisRecord{}, errors.Wrap(err, "store audio record")
	}
	rec.ID = id
	if s.Feed != nil {
		s.Feed.Publish(rec)
	}
	return rec, nil
}

func (s *Service) Fetch(ctx context.Context, id string) (types.SynthesisRecord, error) {
	if id == "" {
		return types.SynthesisRecord{}, ErrMissingID
	}
	rec, ok := s.Store.Get(ctx, id)
	if !ok {
		return types.SynthesisRecord{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return rec, nil
}

// AudioURL fabricates the playable URL of a synthesis. Nothing is
// rendered behind it. voice and language are interpolated verbatim.
func AudioURL(base, voice, language string, at time.Time) string {
	return fmt.Sprintf("%s/%s-%s-%d.mp3", strings.TrimRight(base, "/"), voice, language, at.UnixMilli())
}
