package tts

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	ErrEmptyText   = errors.New("text is required")
	ErrUnsupported = errors.New("unsupported audio format")
)

var formats = map[string]bool{"mp3": true, "wav": true, "ogg": true}

// Languages offered by the UI, with the code sent to the engine.
var Languages = []struct{ Name, Code string }{
	{"english", "en"},
	{"arabic", "ar"},
}

// LangCode maps a language name to its code, defaulting to English.
func LangCode(language string) string {
	l := strings.ToLower(language)
	for _, lang := range Languages {
		if lang.Name == l || lang.Code == l {
			return lang.Code
		}
	}
	return "en"
}

type Provider interface {
	Synthesize(text, lang, voice, format string, speed float32) (url string, durMs int64, err error)
}

// Stub names media files by content hash under Base without producing
// any audio. It backs the playback endpoint used by the UI.
type Stub struct {
	Base string
}

func NewStub(base string) *Stub {
	return &Stub{Base: strings.TrimRight(base, "/")}
}

func (s *Stub) Synthesize(text, lang, voice, format string, speed float32) (string, int64, error) {
	if text == "" {
		return "", 0, ErrEmptyText
	}
	if format == "" {
		format = "mp3"
	}
	if !formats[format] {
		return "", 0, errors.Wrap(ErrUnsupported, format)
	}
	if speed <= 0 {
		speed = 1
	}
	code := LangCode(lang)
	h := sha1.New()
	h.Write([]byte(text + "\x00" + code + "\x00" + voice + "\x00" + format))
	key := hex.EncodeToString(h.Sum(nil))[:16]
	url := s.Base + "/" + code + "/" + key + "." + format
	return url, estimateMs(text, speed), nil
}

// estimateMs assumes about 15 characters per second of speech.
func estimateMs(text string, speed float32) int64 {
	ms := float32(utf8.RuneCountInString(text)) * 1000 / 15 / speed
	if ms < 500 {
		ms = 500
	}
	return int64(ms)
}
