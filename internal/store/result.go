package store

import "github.com/steveyiyo/tts-clone-backend/pkg/types"

type Status int

const (
	OK Status = iota
	Miss
	Unavailable
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Miss:
		return "miss"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// Result is the outcome of one durable-store call. Err is only set when
// Status is Unavailable.
type Result struct {
	Status Status
	ID     string
	Record types.SynthesisRecord
	Err    error
}

func Stored(id string) Result { return Result{Status: OK, ID: id} }

func Found(rec types.SynthesisRecord) Result { return Result{Status: OK, ID: rec.ID, Record: rec} }

func Missing() Result { return Result{Status: Miss} }

func Down(err error) Result { return Result{Status: Unavailable, Err: err} }
