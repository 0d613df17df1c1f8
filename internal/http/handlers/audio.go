package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/steveyiyo/tts-clone-backend/internal/core/audio"
	"github.com/steveyiyo/tts-clone-backend/pkg/types"
)

type AudioHandler struct {
	Svc *audio.Service
	Log zerolog.Logger
	Dev bool
}

func NewAudioHandler(svc *audio.Service, log zerolog.Logger, dev bool) *AudioHandler {
	return &AudioHandler{Svc: svc, Log: log, Dev: dev}
}

func (h *AudioHandler) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.internalError(c, errors.Wrap(err, "read body"), "Failed to process audio request")
		return
	}
	var fields map[string]json.RawMessage
	var req types.AudioReq
	if err := json.Unmarshal(raw, &fields); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "Invalid JSON body"})
		return
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "Invalid JSON body"})
		return
	}

	rec, err := h.Svc.Create(c.Request.Context(), req.Text, req.Language, req.Voice)
	var verr *audio.ValidationError
	switch {
	case errors.As(err, &verr):
		h.Log.Info().Strs("missing", verr.Missing).Msg("rejected audio request")
		c.JSON(http.StatusBadRequest, types.MissingFieldsResp{
			Error:    "Missing required fields",
			Required: audio.RequiredFields,
			Received: keys(fields),
			Missing:  verr.Missing,
		})
		return
	case err != nil:
		h.internalError(c, err, "Failed to process audio request")
		return
	}
	c.JSON(http.StatusOK, types.NewAudioResp(rec))
}

func (h *AudioHandler) Fetch(c *gin.Context) {
	rec, err := h.Svc.Fetch(c.Request.Context(), c.Query("id"))
	switch {
	case errors.Is(err, audio.ErrMissingID):
		c.JSON(http.StatusBadRequest, types.ErrorResp{Error: "Missing audio ID parameter"})
		return
	case errors.Is(err, audio.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResp{Error: "Audio not found"})
		return
	case err != nil:
		h.internalError(c, err, "Failed to fetch audio")
		return
	}
	c.JSON(http.StatusOK, types.NewAudioResp(rec))
}

func (h *AudioHandler) internalError(c *gin.Context, err error, public string) {
	h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, ErrorBody(err.Error(), fmt.Sprintf("%+v", err), public, h.Dev))
}

// ErrorBody hides the cause and stack outside development.
func ErrorBody(msg, stack, public string, dev bool) types.ErrorResp {
	if !dev {
		return types.ErrorResp{Error: public}
	}
	return types.ErrorResp{Error: msg, Stack: stack}
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
