package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/moon-house-service/internal/domain"
	"github.com/couchcryptid/moon-house-service/internal/observability"
	"github.com/couchcryptid/moon-house-service/internal/render"
	"golang.org/x/time/rate"
)

// API serves house computations over a loaded Calculator.
type API struct {
	calc    *domain.Calculator
	limiter *rate.Limiter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewAPI creates the API. rps and burst configure a token-bucket limiter
// shared by every /api/v1 route.
func NewAPI(calc *domain.Calculator, rps float64, burst int, metrics *observability.Metrics, logger *slog.Logger) *API {
	return &API{
		calc:    calc,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		metrics: metrics,
		logger:  logger,
	}
}

func (a *API) register(mux *http.ServeMux) {
	mux.Handle("GET /api/v1/house", a.limit(a.handleHouse))
	mux.Handle("GET /api/v1/fullmoons", a.limit(a.handleFullMoons))
	mux.Handle("GET /api/v1/signs", a.limit(a.handleSigns))
	mux.Handle("GET /api/v1/next", a.limit(a.handleNext))
}

func (a *API) limit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			a.metrics.APIRateLimited.Inc()
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	})
}

type houseResponse struct {
	Result domain.DerivedResult `json:"result"`
	View   render.View          `json:"view"`
}

func (a *API) handleHouse(w http.ResponseWriter, r *http.Request) {
	sel, err := a.selectionFromQuery(r)
	if err != nil {
		a.metrics.APIComputations.WithLabelValues("unknown", "invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.calc.Compute(sel)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		a.metrics.APIComputations.WithLabelValues(string(sel.System), "not_found").Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		a.metrics.APIComputations.WithLabelValues(string(sel.System), "invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.metrics.APIComputations.WithLabelValues(string(sel.System), "ok").Inc()

	view := render.Build(res)
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(render.Text(view))) //nolint:errcheck // best-effort response
		return
	}
	writeJSON(w, http.StatusOK, houseResponse{Result: res, View: view})
}

// selectionFromQuery reads system, rising, and date, defaulting to the
// tropical system, an Aries rising, and the first full moon on record.
func (a *API) selectionFromQuery(r *http.Request) (domain.Selection, error) {
	q := r.URL.Query()
	sel := domain.Selection{System: domain.Tropical, Rising: domain.Aries, Date: q.Get("date")}

	if v := q.Get("system"); v != "" {
		system, err := domain.ParseSystem(v)
		if err != nil {
			return domain.Selection{}, err
		}
		sel.System = system
	}
	if v := q.Get("rising"); v != "" {
		rising, err := domain.ParseSign(v)
		if err != nil {
			return domain.Selection{}, err
		}
		sel.Rising = rising
	}
	if sel.Date == "" {
		if moons := a.calc.FullMoons(); len(moons) > 0 {
			sel.Date = moons[0].Date
		}
	}
	return sel, nil
}

type fullMoonEntry struct {
	Date   string      `json:"date"`
	Label  string      `json:"label"`
	Sign   domain.Sign `json:"sign"`
	Degree float64     `json:"degree"`
	Time   string      `json:"time,omitempty"`
}

func toEntry(rec domain.FullMoonRecord) fullMoonEntry {
	return fullMoonEntry{
		Date:   rec.Date,
		Label:  render.DateLabel(rec.Date),
		Sign:   rec.Tropical.Sign,
		Degree: rec.Tropical.Degree,
		Time:   rec.Tropical.Time,
	}
}

func (a *API) handleFullMoons(w http.ResponseWriter, _ *http.Request) {
	moons := a.calc.FullMoons()
	out := make([]fullMoonEntry, 0, len(moons))
	for _, rec := range moons {
		out = append(out, toEntry(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

type signEntry struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
}

func (a *API) handleSigns(w http.ResponseWriter, _ *http.Request) {
	out := make([]signEntry, 0, domain.SignCount)
	for _, s := range domain.Signs() {
		out = append(out, signEntry{Ordinal: int(s), Name: s.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleNext(w http.ResponseWriter, _ *http.Request) {
	rec, ok := a.calc.NextFullMoon()
	if !ok {
		writeError(w, http.StatusNotFound, "no full moons on record")
		return
	}
	writeJSON(w, http.StatusOK, toEntry(rec))
}
