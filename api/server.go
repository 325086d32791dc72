// Package api exposes the dashboard views over HTTP. Handlers only translate requests and
// errors; every computation lives in the dashboard service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/flag"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/elC0mpa/ec2-observe/service/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewServer(dashboards DashboardSource, store preferences.Store, opts ...Option) *Server {
	s := &Server{
		mux:             http.NewServeMux(),
		dashboards:      dashboards,
		store:           store,
		defaultProvider: provider.AWS,
		version:         "dev",
		logger:          zap.NewNop(),
		registry:        prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ec2observe_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ec2observe_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry.MustRegister(s.requests, s.duration)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.handle("GET /api/costs", s.handleCosts)
	s.handle("GET /api/metrics", s.handleMetrics)
	s.handle("GET /api/ec2", s.handleInstances)
	s.handle("GET /api/ec2/{instanceId}/timeline", s.handleTimeline)
	s.handle("GET /api/recommendations", s.handleRecommendations)
	s.handle("GET /api/test-aws", s.handleCredentials)
	s.handle("GET /api/filters", s.handleGetFilters)
	s.handle("POST /api/filters", s.handleUpdateFilters)
	s.handle("GET /health", s.handleHealth)

	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, h))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// withDashboard resolves the provider query parameter and hands the dashboard to fn
func (s *Server) withDashboard(w http.ResponseWriter, r *http.Request, fn func(svc dashboard.DashboardService)) {
	name := r.URL.Query().Get("provider")
	if name == "" {
		name = s.defaultProvider
	}
	name, err := provider.Normalize(name)
	if err != nil {
		s.writeError(w, CodeUnknownProvider, err.Error(), http.StatusBadRequest)
		return
	}

	svc, release, err := s.dashboards.Dashboard(r.Context(), name)
	if err != nil {
		s.writeError(w, CodeProviderUnavailable, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer release()

	fn(svc)
}

// handleCosts handles GET /api/costs
func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.CostQuery{
		Dimension:     model.Dimension(q.Get("dimension")),
		JobTag:        q.Get("jobTag"),
		Regions:       listParam(q["region"]),
		InstanceTypes: listParam(q["instanceType"]),
		Accounts:      listParam(q["account"]),
	}

	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		resp, err := svc.CostBreakdown(r.Context(), query)
		if errors.Is(err, costs.ErrUnknownDimension) {
			s.writeError(w, CodeInvalidDimension, "dimension must be one of region, instanceType, service, account, job", http.StatusBadRequest)
			return
		}
		if err != nil {
			s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, resp, http.StatusOK)
	})
}

// listParam accepts both repeated and comma-separated query values
func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// handleMetrics handles GET /api/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = costs.Period7d
	}
	if _, err := costs.ParsePeriod(period); err != nil {
		s.writeError(w, CodeInvalidPeriod, "period must be one of 7d, 30d, 90d", http.StatusBadRequest)
		return
	}

	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		resp, err := svc.CostTrend(r.Context(), period)
		if err != nil {
			s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, resp, http.StatusOK)
	})
}

// handleInstances handles GET /api/ec2. Repeated filter=category=value parameters narrow
// the inventory and switch the response to the faceted view.
func (s *Server) handleInstances(w http.ResponseWriter, r *http.Request) {
	pairs := r.URL.Query()["filter"]
	var applied []model.AppliedFilter
	if len(pairs) > 0 {
		var err error
		applied, err = flag.ParseFilters(pairs)
		if err != nil {
			s.writeError(w, CodeInvalidFilter, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		if len(applied) == 0 {
			inventory, err := svc.Instances(r.Context())
			if err != nil {
				s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
				return
			}
			s.writeJSON(w, inventory, http.StatusOK)
			return
		}

		state := model.DefaultFilterState()
		state.AppliedFilters = applied
		view, err := svc.FilterInstances(r.Context(), state)
		if err != nil {
			s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, view, http.StatusOK)
	})
}

// handleTimeline handles GET /api/ec2/{instanceId}/timeline
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	instanceID := r.PathValue("instanceId")
	period, err := model.ParseTimelinePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, CodeInvalidPeriod, "period must be one of 1h, 24h, 7d", http.StatusBadRequest)
		return
	}

	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		timeline, err := svc.Timeline(r.Context(), instanceID, period)
		if err != nil {
			s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, timeline, http.StatusOK)
	})
}

// handleRecommendations handles GET /api/recommendations
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		report, err := svc.Recommendations(r.Context())
		if err != nil {
			s.writeError(w, CodeInternal, err.Error(), http.StatusInternalServerError)
			return
		}
		s.writeJSON(w, report, http.StatusOK)
	})
}

// handleCredentials handles GET /api/test-aws
func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, func(svc dashboard.DashboardService) {
		check := svc.CheckCredentials(r.Context())
		if !check.Success {
			message := check.Message
			if check.Details != "" {
				message += ": " + check.Details
			}
			s.writeError(w, CodeCredentialsInvalid, message, http.StatusUnauthorized)
			return
		}
		s.writeJSON(w, check, http.StatusOK)
	})
}

// handleGetFilters handles GET /api/filters
func (s *Server) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, CodeStoreError, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, state, http.StatusOK)
}

// handleUpdateFilters handles POST /api/filters
func (s *Server) handleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), http.StatusBadRequest)
		return
	}

	var args []string
	if req.Category != "" {
		args = append(args, req.Category)
		if req.Value != "" {
			args = append(args, req.Value)
		}
	}

	state, err := s.store.Load(r.Context())
	if err != nil {
		s.writeError(w, CodeStoreError, err.Error(), http.StatusInternalServerError)
		return
	}

	next, err := preferences.ApplyAction(state, req.Action, args)
	if err != nil {
		s.writeError(w, CodeInvalidFilter, err.Error(), http.StatusBadRequest)
		return
	}

	if preferences.Mutates(req.Action) {
		if err := s.store.Save(r.Context(), next); err != nil {
			s.writeError(w, CodeStoreError, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	s.writeJSON(w, next, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, errorEnvelope{Error: errorBody{Code: code, Message: message}}, status)
}
