package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/internal/controller"
	"github.com/xpsychometrics/collabmap/middleware"
)

func NewRouter(conf Config, ctrl *controller.Controller, metrics *Metrics) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.AddAll)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: conf.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	h := &handlers{ctrl: ctrl}
	router.Get("/healthz", h.healthz)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.Route("/api", func(r chi.Router) {
		r.Get("/collaborations", h.collaborations)
		r.Get("/force/commands", h.forceCommands)
	})
	router.Get("/map/{file}", h.mapFile)
	return router
}

type handlers struct {
	ctrl *controller.Controller
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// collaborations lists the dataset, optionally restricted to one category.
func (h *handlers) collaborations(w http.ResponseWriter, r *http.Request) {
	ds, err := h.ctrl.Dataset(r.Context())
	if err != nil {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	records := ds.Collaborations
	if category := r.URL.Query().Get("category"); category != "" {
		cat := model.Category(category)
		if cat != model.CategoryNational && cat != model.CategoryInternational {
			http.Error(w, "unknown category '"+category+"'", http.StatusBadRequest)
			return
		}
		records = db.FindAll(records, func(rec model.CollaborationRecord) bool { return rec.Category() == cat })
	}
	writeJSON(w, r, struct {
		Center         model.CenterEntity          `json:"center"`
		Collaborations []model.CollaborationRecord `json:"collaborations"`
	}{ds.Center, records})
}

func (h *handlers) forceCommands(w http.ResponseWriter, r *http.Request) {
	cmds, err := h.ctrl.ForceCommands(r.Context())
	if err != nil {
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, cmds)
}

// mapFile renders /map/<force|geo|locations>.<svg|png>.
func (h *handlers) mapFile(w http.ResponseWriter, r *http.Request) {
	name, ext, ok := strings.Cut(chi.URLParam(r, "file"), ".")
	if !ok {
		http.NotFound(w, r)
		return
	}
	ctrl := h.ctrl
	if cw, err := strconv.ParseFloat(r.URL.Query().Get("container"), 64); err == nil {
		canvas := ctrl.Canvas()
		canvas.Width = controller.CanvasWidth(cw, canvas.Width)
		ctrl = ctrl.WithCanvas(canvas)
	}
	invert, _ := strconv.ParseBool(r.URL.Query().Get("invert"))
	format := controller.Format(ext)
	data, err := ctrl.Image(r.Context(), name, format, invert)
	switch {
	case errors.Is(err, controller.ErrUnknownMap):
		http.NotFound(w, r)
		return
	case err != nil:
		log.Ctx(r.Context()).Error().Msgf("rendering map '%s': %v", name, err)
		http.Error(w, "map unavailable", http.StatusServiceUnavailable)
		return
	}
	if format == controller.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(r.Context()).Error().Msgf("encoding response: %v", err)
	}
}
