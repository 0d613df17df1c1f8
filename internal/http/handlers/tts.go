package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/steveyiyo/tts-clone-backend/internal/core/tts"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

// TTSHandler serves the playback endpoint the UI points its audio element
// at. It is independent of the audio record store.
type TTSHandler struct {
	Provider tts.Provider
}

func NewTTSHandler(p tts.Provider) *TTSHandler {
	return &TTSHandler{Provider: p}
}

// Play redirects to the media URL for ?text=&lang=.
func (h *TTSHandler) Play(c *gin.Context) {
	url, _, err := h.Provider.Synthesize(c.Query("text"), c.Query("lang"), c.Query("voice"), "mp3", 1)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *TTSHandler) Synthesize(c *gin.Context) {
	var req types.TTSReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	url, dur, err := h.Provider.Synthesize(req.Text, req.Lang, req.Voice, req.Format, req.Speed)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TTSResp{AudioURL: url, DurationMs: dur})
}

func (h *TTSHandler) Languages(c *gin.Context) {
	names := make([]string, 0, len(tts.Languages))
	for _, l := range tts.Languages {
		names = append(names, l.Name)
	}
	c.JSON(http.StatusOK, types.LanguagesResp{Languages: names})
}

func (h *TTSHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, tts.ErrEmptyText) || errors.Is(err, tts.ErrUnsupported) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "tts_failed"})
}
