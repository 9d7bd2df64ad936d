package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/bezier/internal/domain/entity"
)

var (
	errDownloadsDenied = errors.New("downloads capability not granted")
	errURLRequired     = errors.New("url is required")
)

type startDownloadRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func registerDownloads(r chi.Router, d Deps) {
	b := d.Browser
	r.Route("/downloads", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, b.Downloads())
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, req startDownloadRequest) {
			if strings.TrimSpace(req.URL) == "" {
				writeError(w, r, http.StatusBadRequest, errURLRequired)
				return
			}
			if d.Permissions != nil && !d.Permissions.Request(r.Context(), entity.CapabilityDownloads) {
				writeError(w, r, http.StatusForbidden, errDownloadsDenied)
				return
			}
			if d.Transfers == nil {
				id := b.StartDownload(r.Context(), req.URL, req.Filename)
				writeJSON(w, r, http.StatusAccepted, idResponse{ID: string(id)})
				return
			}
			id, _ := d.Transfers.Start(r.Context(), req.URL, req.Filename)
			writeJSON(w, r, http.StatusAccepted, idResponse{ID: string(id)})
		}))

		r.Route("/{downloadID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				item, ok := b.Download(downloadID(r))
				if !ok {
					writeError(w, r, http.StatusNotFound, errNotFound)
					return
				}
				writeJSON(w, r, http.StatusOK, item)
			})
			r.Post("/pause", func(w http.ResponseWriter, r *http.Request) {
				b.PauseDownload(r.Context(), downloadID(r))
				noContent(w)
			})
			r.Post("/resume", func(w http.ResponseWriter, r *http.Request) {
				b.ResumeDownload(r.Context(), downloadID(r))
				noContent(w)
			})
			r.Post("/cancel", func(w http.ResponseWriter, r *http.Request) {
				b.CancelDownload(r.Context(), downloadID(r))
				noContent(w)
			})
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				b.RemoveDownload(r.Context(), downloadID(r))
				noContent(w)
			})
		})
	})
}

func downloadID(r *http.Request) entity.DownloadID {
	return entity.DownloadID(chi.URLParam(r, "downloadID"))
}
