package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

func TestRecordRepo_SaveAndGet(t *testing.T) {
	repo := NewRecordRepo()
	repo.now = func() time.Time { return time.UnixMilli(1700000000123) }

	id := repo.Save(types.SynthesisRecord{Text: "hello", Language: "english", Voice: "voiceA", URL: "u"})
	if id != "1700000000123" {
		t.Fatalf("id = %q, want timestamp id", id)
	}

	rec, ok := repo.Get(id)
	if !ok {
		t.Fatal("record not found")
	}
	if rec.ID != id || rec.Voice != "voiceA" {
		t.Errorf("unexpected record: %+v", rec)
	}

	if _, ok := repo.Get("missing"); ok {
		t.Error("Get returned a record for an unknown id")
	}
}

func TestRecordRepo_SameMillisecond(t *testing.T) {
	repo := NewRecordRepo()
	repo.now = func() time.Time { return time.UnixMilli(42) }

	first := repo.Save(types.SynthesisRecord{Text: "a"})
	second := repo.Save(types.SynthesisRecord{Text: "b"})
	if first == second {
		t.Fatalf("ids collided: %s", first)
	}
	if second != "43" {
		t.Errorf("second id = %q, want 43", second)
	}
	rec, _ := repo.Get(first)
	if rec.Text != "a" {
		t.Errorf("first record overwritten: %+v", rec)
	}
}

func TestRecordRepo_ConcurrentSave(t *testing.T) {
	repo := NewRecordRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Save(types.SynthesisRecord{Text: "x"})
		}()
	}
	wg.Wait()
	if repo.Len() != 50 {
		t.Errorf("Len = %d, want 50", repo.Len())
	}
}
