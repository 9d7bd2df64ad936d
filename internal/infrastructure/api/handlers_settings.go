package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/domain/credential"
	"github.com/bnema/bezier/internal/domain/entity"
)

// statusFor maps store validation errors to 400 and anything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidTheme),
		errors.Is(err, store.ErrInvalidExtension),
		errors.Is(err, entity.ErrInvalidCapability):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- theme

func registerTheme(r chi.Router, d Deps) {
	t := d.Themes
	if t == nil {
		return
	}
	r.Route("/theme", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, t.CurrentTheme())
		})
		r.Put("/", decode(func(w http.ResponseWriter, r *http.Request, theme entity.Theme) {
			if err := t.SetTheme(r.Context(), theme); err != nil {
				writeError(w, r, statusFor(err), err)
				return
			}
			noContent(w)
		}))
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			t.ResetTheme(r.Context())
			noContent(w)
		})
		r.Get("/css", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, t.CSSVariables())
		})
		r.Post("/select/{themeID}", func(w http.ResponseWriter, r *http.Request) {
			if !t.SelectTheme(r.Context(), themeID(r)) {
				writeError(w, r, http.StatusNotFound, errNotFound)
				return
			}
			noContent(w)
		})

		r.Get("/custom", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, t.CustomThemes())
		})
		r.Post("/custom", decode(func(w http.ResponseWriter, r *http.Request, theme entity.Theme) {
			id, err := t.AddCustomTheme(r.Context(), theme)
			if err != nil {
				writeError(w, r, statusFor(err), err)
				return
			}
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Patch("/custom/{themeID}", decode(func(w http.ResponseWriter, r *http.Request, patch store.ThemePatch) {
			if err := t.UpdateCustomTheme(r.Context(), themeID(r), patch); err != nil {
				writeError(w, r, statusFor(err), err)
				return
			}
			noContent(w)
		}))
		r.Delete("/custom/{themeID}", func(w http.ResponseWriter, r *http.Request) {
			t.RemoveCustomTheme(r.Context(), themeID(r))
			noContent(w)
		})

		r.Get("/presets", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, t.Presets())
		})
		r.Post("/presets", decode(func(w http.ResponseWriter, r *http.Request, preset entity.ThemePreset) {
			if err := t.AddPreset(r.Context(), preset); err != nil {
				writeError(w, r, statusFor(err), err)
				return
			}
			noContent(w)
		}))
		r.Delete("/presets/{presetID}", func(w http.ResponseWriter, r *http.Request) {
			t.RemovePreset(r.Context(), chi.URLParam(r, "presetID"))
			noContent(w)
		})
	})
}

func themeID(r *http.Request) entity.ThemeID { return entity.ThemeID(chi.URLParam(r, "themeID")) }

// --- extensions

type messageRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func registerExtensions(r chi.Router, d Deps) {
	x := d.Extensions
	if x == nil {
		return
	}
	r.Route("/extensions", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, x.Extensions())
		})
		r.Post("/", decode(func(w http.ResponseWriter, r *http.Request, spec store.ExtensionSpec) {
			id, err := x.InstallExtension(r.Context(), spec)
			if err != nil {
				writeError(w, r, statusFor(err), err)
				return
			}
			writeJSON(w, r, http.StatusCreated, idResponse{ID: string(id)})
		}))
		r.Get("/messages", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, x.Messages())
		})
		r.Delete("/messages", func(w http.ResponseWriter, r *http.Request) {
			x.ClearMessages(r.Context())
			noContent(w)
		})

		r.Route("/{extensionID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				ext, ok := x.Extension(extensionID(r))
				if !ok {
					writeError(w, r, http.StatusNotFound, errNotFound)
					return
				}
				writeJSON(w, r, http.StatusOK, ext)
			})
			r.Patch("/", decode(func(w http.ResponseWriter, r *http.Request, patch store.ExtensionPatch) {
				x.UpdateExtension(r.Context(), extensionID(r), patch)
				noContent(w)
			}))
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				x.UninstallExtension(r.Context(), extensionID(r))
				noContent(w)
			})
			r.Post("/toggle", func(w http.ResponseWriter, r *http.Request) {
				x.ToggleExtension(r.Context(), extensionID(r))
				noContent(w)
			})
			r.Post("/messages", decode(func(w http.ResponseWriter, r *http.Request, req messageRequest) {
				id := x.SendMessage(r.Context(), entity.ExtensionMessage{
					Type:        req.Type,
					Payload:     req.Payload,
					ExtensionID: extensionID(r),
				})
				if id == "" {
					writeError(w, r, http.StatusNotFound, errNotFound)
					return
				}
				writeJSON(w, r, http.StatusAccepted, idResponse{ID: id})
			}))
			r.Post("/messages/process", func(w http.ResponseWriter, r *http.Request) {
				x.ProcessMessage(r.Context(), entity.ExtensionMessage{ExtensionID: extensionID(r)})
				noContent(w)
			})
			r.Patch("/storage", decode(func(w http.ResponseWriter, r *http.Request, data map[string]any) {
				x.UpdateExtensionStorage(r.Context(), extensionID(r), data)
				noContent(w)
			}))
			r.Delete("/storage", func(w http.ResponseWriter, r *http.Request) {
				x.ClearExtensionStorage(r.Context(), extensionID(r))
				noContent(w)
			})
		})
	})
}

func extensionID(r *http.Request) entity.ExtensionID {
	return entity.ExtensionID(chi.URLParam(r, "extensionID"))
}

// --- permissions

type permissionResponse struct {
	Capability entity.Capability `json:"capability"`
	Granted    bool              `json:"granted"`
}

func registerPermissions(r chi.Router, d Deps) {
	g := d.Permissions
	if g == nil {
		return
	}
	r.Route("/permissions", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, r, http.StatusOK, g.All())
		})
		r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
			g.Clear()
			noContent(w)
		})
		r.Get("/{capability}", withCapability(func(w http.ResponseWriter, r *http.Request, c entity.Capability) {
			writeJSON(w, r, http.StatusOK, permissionResponse{Capability: c, Granted: g.Has(c)})
		}))
		r.Post("/{capability}", withCapability(func(w http.ResponseWriter, r *http.Request, c entity.Capability) {
			writeJSON(w, r, http.StatusOK, permissionResponse{Capability: c, Granted: g.Request(r.Context(), c)})
		}))
		r.Delete("/{capability}", withCapability(func(w http.ResponseWriter, r *http.Request, c entity.Capability) {
			g.Revoke(c)
			noContent(w)
		}))
	})
}

func withCapability(fn func(w http.ResponseWriter, r *http.Request, c entity.Capability)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := entity.ParseCapability(chi.URLParam(r, "capability"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		fn(w, r, c)
	}
}

// --- password

type passwordRequest struct {
	Password string `json:"password"`
}

func registerPassword(r chi.Router) {
	r.Post("/password/strength", decode(func(w http.ResponseWriter, r *http.Request, body passwordRequest) {
		writeJSON(w, r, http.StatusOK, credential.Evaluate(body.Password))
	}))
}
