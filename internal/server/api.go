package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/analytics"
	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/report"
)

const analyzeTimeout = 60 * time.Second

// Analyzer runs one analysis request.
type Analyzer interface {
	Run(ctx context.Context, req finance.Request) (*finance.Result, error)
}

// API serves analyses over HTTP. Query parameters mirror the bot command:
// symbols, amounts, start and end (or window), confidence and benchmark.
type API struct {
	analyzer          Analyzer
	defaultConfidence float64
	log               zerolog.Logger
	now               func() time.Time
}

func NewAPI(analyzer Analyzer, defaultConfidence float64, log zerolog.Logger) *API {
	if defaultConfidence == 0 {
		defaultConfidence = finance.DefaultConfidence
	}
	return &API{
		analyzer:          analyzer,
		defaultConfidence: defaultConfidence,
		log:               log.With().Str("component", "api").Logger(),
		now:               time.Now,
	}
}

// Analyze answers GET /api/analyze with the report as JSON.
func (a *API) Analyze(w http.ResponseWriter, r *http.Request) {
	res, ok := a.run(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, report.NewDocument(res))
}

// Chart answers GET /api/analyze/chart with the comparison chart as PNG.
func (a *API) Chart(w http.ResponseWriter, r *http.Request) {
	res, ok := a.run(w, r)
	if !ok {
		return
	}
	img, err := finance.RenderComparisonChart(res)
	if err != nil {
		a.log.Error().Err(err).Msg("chart failed")
		a.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		a.log.Warn().Err(err).Msg("chart write failed")
	}
}

func (a *API) run(w http.ResponseWriter, r *http.Request) (*finance.Result, bool) {
	req, err := a.parseRequest(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()
	res, err := a.analyzer.Run(ctx, req)
	if err != nil {
		a.log.Warn().Err(err).Strs("symbols", req.Symbols).Msg("analysis failed")
		a.writeError(w, err)
		return nil, false
	}
	return res, true
}

// parseRequest lays the query out as an analyze command and reuses its parser.
func (a *API) parseRequest(q url.Values) (finance.Request, error) {
	list := func(k string) string {
		return strings.Join(strings.Fields(strings.ReplaceAll(q.Get(k), ",", " ")), ",")
	}
	args := []string{list("symbols"), list("amounts")}
	if w := q.Get("window"); w != "" {
		args = append(args, w)
	} else {
		args = append(args, q.Get("start"), q.Get("end"))
	}
	for i, name := range []string{"symbols", "amounts", "window or start", "end"} {
		if i < len(args) && args[i] == "" {
			return finance.Request{}, fmt.Errorf("%w: %s is required", finance.ErrInvalidCommand, name)
		}
	}
	if c := q.Get("confidence"); c != "" {
		args = append(args, c)
	}

	req, err := finance.ParseAnalyzeCommand(strings.Join(args, " "), a.now(), a.defaultConfidence)
	if err != nil {
		return finance.Request{}, err
	}
	req.Benchmark = strings.ToUpper(strings.TrimSpace(q.Get("benchmark")))
	return req, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	a.writeJSON(w, statusFor(err), errorResponse{Error: report.ErrorMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, finance.ErrUnknownSymbol):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, finance.ErrNoData),
		errors.Is(err, analytics.ErrInsufficientData),
		errors.Is(err, analytics.ErrInsufficientOverlap),
		errors.Is(err, analytics.ErrZeroBase):
		return http.StatusUnprocessableEntity
	case errors.Is(err, finance.ErrInvalidCommand),
		errors.Is(err, finance.ErrConfidenceRange),
		errors.Is(err, finance.ErrInvalidWindow),
		errors.Is(err, analytics.ErrEmptyPortfolio),
		errors.Is(err, analytics.ErrMismatchedLength),
		errors.Is(err, analytics.ErrInvalidAmount),
		errors.Is(err, analytics.ErrInvalidConfidence):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Warn().Err(err).Int("status", status).Msg("response write failed")
	}
}
