package catalog

import (
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"MySupplements/pkg/kit"
)

const notFoundMessage = "Product not found"

type Server struct {
	Store   *Store
	Log     *zap.Logger
	Metrics *Metrics

	SearchLimiter *kit.IPRateLimiter

	readyFlag atomic.Bool
}

// SetReady flips /readyz. It is set once the store is loaded and cleared when
// the server starts draining.
func (s *Server) SetReady(ready bool) {
	s.readyFlag.Store(ready)
}

type healthResp struct {
	Status string `json:"status"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	search := http.Handler(http.HandlerFunc(s.search))
	if s.SearchLimiter != nil {
		search = s.SearchLimiter.Middleware(search)
	}
	r.Method(http.MethodGet, "/search", search)
	r.Get("/product/{id}", s.get)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, healthResp{Status: "ok"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if !s.readyFlag.Load() || s.Store == nil {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := searchLimit(q)
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.RejectedLimits.Inc()
		}
		kit.WriteError(w, r, http.StatusUnprocessableEntity, "invalid limit", map[string]any{
			"limit": q.Get("limit"),
			"min":   MinLimit,
			"max":   MaxLimit,
		})
		return
	}

	products, err := s.Store.Search(Query{
		Text:    q.Get("q"),
		Country: q.Get("country"),
		Limit:   limit,
	})
	if err != nil {
		s.logger().Error("search failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Metrics != nil {
		s.Metrics.SearchResults.Observe(float64(len(products)))
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

// searchLimit applies DefaultLimit only when the parameter is absent.
func searchLimit(q url.Values) (int, error) {
	if !q.Has("limit") {
		return DefaultLimit, nil
	}
	return ParseLimit(q.Get("limit"))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Store.Get(id)
	if errors.Is(err, ErrNotFound) {
		if s.Metrics != nil {
			s.Metrics.LookupMisses.Inc()
		}
		s.logger().Debug("product not found", zap.String("id", id))
		kit.WriteError(w, r, http.StatusNotFound, notFoundMessage, map[string]any{"id": id})
		return
	}
	if err != nil {
		s.logger().Error("get product failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
