package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/domain/build"
	"github.com/bnema/bezier/internal/domain/entity"
)

var errNotFound = errors.New("not found")

type healthzResponse struct {
	Status        string     `json:"status"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	Build         build.Info `json:"build"`
}

func healthz(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uptime float64
		if !d.StartTime.IsZero() {
			uptime = time.Since(d.StartTime).Seconds()
		}
		writeJSON(w, r, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: uptime,
			Build:         build.Current(),
		})
	}
}

func getState(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, d.Browser.State())
	}
}

func toggleSidebar(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Browser.ToggleSidebar(r.Context())
		writeJSON(w, r, http.StatusOK, map[string]bool{"sidebarOpen": d.Browser.SidebarOpen()})
	}
}

// --- tabs

type navigateRequest struct {
	Input string `json:"input"`
}

type moveRequest struct {
	Index int `json:"index"`
}

func registerTabs(r chi.Router, d Deps) {
	b := d.Browser
	r.Route("/tabs", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, b.Tabs())
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, spec store.TabSpec) {
			id := b.AddTab(r.Context(), spec)
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Get("/active", func(w http.ResponseWriter, r *http.Request) {
			tab, ok := b.ActiveTab()
			if !ok {
				writeError(w, r, http.StatusNotFound, errNotFound)
				return
			}
			writeJSON(w, r, http.StatusOK, tab)
		})

		r.Route("/{tabID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				tab, ok := b.Tab(tabID(r))
				if !ok {
					writeError(w, r, http.StatusNotFound, errNotFound)
					return
				}
				writeJSON(w, r, http.StatusOK, tab)
			})
			r.Patch("/", decode(func(w http.ResponseWriter, r *http.Request, patch store.TabPatch) {
				b.UpdateTab(r.Context(), tabID(r), patch)
				noContent(w)
			}))
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				b.CloseTab(r.Context(), tabID(r))
				noContent(w)
			})
			r.Post("/activate", func(w http.ResponseWriter, r *http.Request) {
				b.SetActiveTab(r.Context(), tabID(r))
				noContent(w)
			})
			r.Post("/pin", func(w http.ResponseWriter, r *http.Request) {
				b.PinTab(r.Context(), tabID(r))
				noContent(w)
			})
			r.Post("/mute", func(w http.ResponseWriter, r *http.Request) {
				b.MuteTab(r.Context(), tabID(r))
				noContent(w)
			})
			r.Post("/hibernate", func(w http.ResponseWriter, r *http.Request) {
				b.HibernateTab(r.Context(), tabID(r))
				noContent(w)
			})
			r.Post("/navigate", decode(func(w http.ResponseWriter, r *http.Request, req navigateRequest) {
				b.NavigateTab(r.Context(), tabID(r), req.Input)
				noContent(w)
			}))
			r.Post("/move", decode(func(w http.ResponseWriter, r *http.Request, req moveRequest) {
				b.MoveTab(r.Context(), tabID(r), req.Index)
				noContent(w)
			}))
			r.Put("/group/{groupID}", func(w http.ResponseWriter, r *http.Request) {
				b.MoveTabToGroup(r.Context(), tabID(r), groupID(r))
				noContent(w)
			})
			r.Delete("/group", func(w http.ResponseWriter, r *http.Request) {
				b.RemoveTabFromGroup(r.Context(), tabID(r))
				noContent(w)
			})
		})
	})
}

func tabID(r *http.Request) entity.TabID { return entity.TabID(chi.URLParam(r, "tabID")) }

// --- groups

type createGroupRequest struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Layout string `json:"layout"`
}

func registerGroups(r chi.Router, d Deps) {
	b := d.Browser
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, b.Groups())
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, req createGroupRequest) {
			layout, err := entity.ParseGroupLayout(req.Layout)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, err)
				return
			}
			id := b.AddTabGroup(r.Context(), req.Name, req.Color, layout)
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Get("/{groupID}", func(w http.ResponseWriter, r *http.Request) {
			g, ok := b.Group(groupID(r))
			if !ok {
				writeError(w, r, http.StatusNotFound, errNotFound)
				return
			}
			writeJSON(w, r, http.StatusOK, g)
		})
		r.Patch("/{groupID}", decode(func(w http.ResponseWriter, r *http.Request, patch store.GroupPatch) {
			b.UpdateTabGroup(r.Context(), groupID(r), patch)
			noContent(w)
		}))
		r.Delete("/{groupID}", func(w http.ResponseWriter, r *http.Request) {
			b.RemoveTabGroup(r.Context(), groupID(r))
			noContent(w)
		})
	})
}

func groupID(r *http.Request) entity.GroupID { return entity.GroupID(chi.URLParam(r, "groupID")) }

// --- history

func registerHistory(r chi.Router, d Deps) {
	b := d.Browser
	r.Route("/history", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			limit, err := queryInt(r, "limit")
			if err != nil {
				writeError(w, r, http.StatusBadRequest, err)
				return
			}
			entries := b.History()
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			writeJSON(w, r, http.StatusOK, entries)
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, visit store.VisitInfo) {
			id := b.AddHistoryEntry(r.Context(), visit)
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			b.ClearHistory(r.Context())
			noContent(w)
		})
		r.Delete("/{historyID}", func(w http.ResponseWriter, r *http.Request) {
			b.RemoveHistoryEntry(r.Context(), entity.HistoryID(chi.URLParam(r, "historyID")))
			noContent(w)
		})
		if d.Analytics != nil {
			r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
				days, err := queryInt(r, "days")
				if err != nil {
					writeError(w, r, http.StatusBadRequest, err)
					return
				}
				top, err := queryInt(r, "top")
				if err != nil {
					writeError(w, r, http.StatusBadRequest, err)
					return
				}
				writeJSON(w, r, http.StatusOK, d.Analytics.Execute(r.Context(), usecase.HistoryAnalyticsInput{Days: days, TopN: top}))
			})
		}
	})
}

// --- bookmarks

func registerBookmarks(r chi.Router, d Deps) {
	b := d.Browser
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			switch {
			case q.Get("tag") != "":
				writeJSON(w, r, http.StatusOK, b.BookmarksByTag(q.Get("tag")))
			case q.Has("folder"):
				writeJSON(w, r, http.StatusOK, b.BookmarksInFolder(q.Get("folder")))
			default:
				writeJSON(w, r, http.StatusOK, b.Bookmarks())
			}
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, spec store.BookmarkSpec) {
			id := b.AddBookmark(r.Context(), spec)
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Patch("/{bookmarkID}", decode(func(w http.ResponseWriter, r *http.Request, patch store.BookmarkPatch) {
			b.UpdateBookmark(r.Context(), entity.BookmarkID(chi.URLParam(r, "bookmarkID")), patch)
			noContent(w)
		}))
		r.Delete("/{bookmarkID}", func(w http.ResponseWriter, r *http.Request) {
			b.RemoveBookmark(r.Context(), entity.BookmarkID(chi.URLParam(r, "bookmarkID")))
			noContent(w)
		})
	})
}

// --- command palette

func registerPalette(r chi.Router, d Deps) {
	if d.Palette == nil {
		return
	}
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		out := d.Palette.Execute(r.Context(), usecase.SearchCommandsInput{
			Query: r.URL.Query().Get("q"),
			Limit: limit,
		})
		writeJSON(w, r, http.StatusOK, out)
	})
}
