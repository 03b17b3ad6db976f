package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/eventpass/internal/passes/media"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

// MediaHandler godoc
//
//	@Summary		Fetch Media
//	@Description	Serve a rendered pass image previously uploaded for delivery.
//	@Tags			Media
//	@Produce		png
//	@Param			key	path		string	true	"Media key"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/media/{key} [get].
func MediaHandler(st media.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		if !media.ValidKey(key) {
			httpx.WriteError(w, http.StatusNotFound, "Media not found")
			return
		}

		data, err := st.Get(r.Context(), key)
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "Media not found")
				return
			}
			slogx.FromContext(r.Context()).Error("failed to read media", slog.String("key", key), slog.Any("error", err))
			httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
