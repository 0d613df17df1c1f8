package memory

import (
	"strconv"
	"sync"
	"time"

	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

// RecordRepo is the transient table. Its contents are lost on restart.
type RecordRepo struct {
	mu  sync.RWMutex
	m   map[string]types.SynthesisRecord
	now func() time.Time
}

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{m: map[string]types.SynthesisRecord{}, now: time.Now}
}

// Save stores rec under a millisecond timestamp id, bumped until unused.
func (r *RecordRepo) Save(rec types.SynthesisRecord) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for {
		if _, taken := r.m[id]; !taken {
			break
		}
		n++
		id = strconv.FormatInt(n, 10)
	}
	rec.ID = id
	r.m[id] = rec
	return id
}

func (r *RecordRepo) Get(id string) (types.SynthesisRecord, bool) {
	r.mu.RLock()
	rec, ok := r.m[id]
	r.mu.RUnlock()
	return rec, ok
}

func (r *RecordRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
