package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stpaul-crime/api/handlers"
	"stpaul-crime/config"
	"stpaul-crime/core/incidents"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// ServerDeps collects everything the HTTP surface needs.
type ServerDeps struct {
	Config    *config.AppConfig
	Logger    *utils.Logger
	Incidents *incidents.Service
	Reference store.ReferenceStore
}

type Server struct {
	cfg    *config.AppConfig
	logger *utils.Logger
	router chi.Router
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{cfg: deps.Config, logger: deps.Logger}

	ih := handlers.NewIncidentsHandler(deps.Incidents, deps.Config.EffectiveQueryLimit(), deps.Logger)
	rh := handlers.NewReferenceHandler(deps.Reference, deps.Logger)

	r := chi.NewRouter()
	r.Use(s.accessLogMiddleware)
	r.Use(s.recoverMiddleware)

	r.MethodFunc(http.MethodGet, "/codes", rh.GetCodes)
	r.MethodFunc(http.MethodGet, "/neighborhoods", rh.GetNeighborhoods)
	r.MethodFunc(http.MethodGet, "/incidents", ih.List)
	r.MethodFunc(http.MethodPut, "/new-incident", ih.Create)
	r.MethodFunc(http.MethodDelete, "/remove-incident", ih.Delete)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
