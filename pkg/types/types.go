package types

import "time"

// Status of a synthesis. Generation is synchronous, so new records are
// always StatusCompleted; the other values only appear in records written
// to a shared database by other clients.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// SynthesisRecord is one persisted text-to-speech request.
type SynthesisRecord struct {
	ID        string
	Text      string
	Language  string
	Voice     string
	URL       string
	Timestamp time.Time
	Status    Status
}

// TimeLayout renders timestamps the way browsers' Date.toISOString does.
const TimeLayout = "2006-01-02T15:04:05.000Z"

type AudioReq struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

type AudioResp struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Language  string `json:"language"`
	Voice     string `json:"voice"`
	Timestamp string `json:"timestamp"`
}

func NewAudioResp(r SynthesisRecord) AudioResp {
	return AudioResp{
		ID:        r.ID,
		URL:       r.URL,
		Language:  r.Language,
		Voice:     r.Voice,
		Timestamp: r.Timestamp.UTC().Format(TimeLayout),
	}
}

type AudioEvent struct {
	Type  string    `json:"type"`
	Audio AudioResp `json:"audio"`
}

type ErrorResp struct {
	Error string `json:"error"`
	Stack string `json:"stack,omitempty"`
}

type MissingFieldsResp struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
	Received []string `json:"received"`
	Missing  []string `json:"missing"`
}

type TTSReq struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Lang   string  `json:"lang"`
	Format string  `json:"format"`
	Speed  float32 `json:"speed"`
}

type TTSResp struct {
	AudioURL   string `json:"audio_url"`
	DurationMs int64  `json:"duration_ms"`
}

type LanguagesResp struct {
	Languages []string `json:"languages"`
}

type HealthResp struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
