package audio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/internal/repo/memory"
	"github.com/steveyiyo/tts-clone-backend/internal/store"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

type recordingFeed struct {
	got []types.SynthesisRecord
}

func (f *recordingFeed) Publish(rec types.SynthesisRecord) { f.got = append(f.got, rec) }

type brokenStore struct{}

func (brokenStore) Put(context.Context, types.SynthesisRecord) (string, error) {
	return "", errors.New("disk on fire")
}

func (brokenStore) Get(context.Context, string) (types.SynthesisRecord, bool) {
	return types.SynthesisRecord{}, false
}

func newService(feed Publisher) *Service {
	st := store.New(nil, memory.NewRecordRepo(), zerolog.Nop())
	svc := NewService(st, "https://example.com/audio/", feed)
	svc.Now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc
}

func TestAudioURL(t *testing.T) {
	got := AudioURL("https://example.com/audio", "voiceA", "english", time.UnixMilli(42))
	if got != "https://example.com/audio/voiceA-english-42.mp3" {
		t.Errorf("AudioURL = %q", got)
	}
}

func TestService_URLKeepsVoiceAndLanguage(t *testing.T) {
	svc := newService(nil)
	cases := []struct{ voice, language string }{
		{"voice A", "english"},
		{"voiceA", "العربية"},
		{"en/US", "english"},
	}
	for _, tc := range cases {
		rec, err := svc.Create(context.Background(), "hello", tc.language, tc.voice)
		if err != nil {
			t.Fatalf("Create(%q, %q): %v", tc.voice, tc.language, err)
		}
		if !strings.Contains(rec.URL, tc.voice) || !strings.Contains(rec.URL, tc.language) {
			t.Errorf("url %q lacks voice %q or language %q", rec.URL, tc.voice, tc.language)
		}
	}
}

func TestService_CreateAndFetch(t *testing.T) {
	feed := &recordingFeed{}
	svc := newService(feed)

	rec, err := svc.Create(context.Background(), "hello", "english", "voiceA")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("empty id")
	}
	if !strings.Contains(rec.URL, "voiceA") || !strings.Contains(rec.URL, "english") {
		t.Errorf("url %q lacks voice or language", rec.URL)
	}
	if rec.URL != "https://example.com/audio/voiceA-english-1700000000123.mp3" {
		t.Errorf("url = %q", rec.URL)
	}
	if rec.Status != types.StatusCompleted {
		t.Errorf("status = %q, want completed", rec.Status)
	}
	if len(feed.got) != 1 || feed.got[0].ID != rec.ID {
		t.Errorf("feed got %+v", feed.got)
	}

	back, err := svc.Fetch(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if back.URL != rec.URL || back.Language != "english" || back.Voice != "voiceA" {
		t.Errorf("fetched %+v, created %+v", back, rec)
	}
}

func TestService_CreateMissingFields(t *testing.T) {
	feed := &recordingFeed{}
	svc := newService(feed)

	_, err := svc.Create(context.Background(), "", "english", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if strings.Join(verr.Missing, ",") != "text,voice" {
		t.Errorf("Missing = %v", verr.Missing)
	}
	if len(feed.got) != 0 {
		t.Error("invalid request published to feed")
	}
}

func TestService_FetchErrors(t *testing.T) {
	svc := newService(nil)

	if _, err := svc.Fetch(context.Background(), ""); !errors.Is(err, ErrMissingID) {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
	if _, err := svc.Fetch(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_StoreFailureIsWrapped(t *testing.T) {
	svc := NewService(brokenStore{}, "https://example.com/audio", nil)
	_, err := svc.Create(context.Background(), "hello", "english", "voiceA")
	if err == nil || !strings.Contains(err.Error(), "store audio record") {
		t.Errorf("err = %v", err)
	}
}
