package api

import (
	"context"
	"net/http"

	"github.com/elC0mpa/ec2-observe/service/dashboard"
	"github.com/elC0mpa/ec2-observe/service/preferences"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

// Error codes of the error envelope
const (
	CodeInvalidDimension    = "INVALID_DIMENSION"
	CodeInvalidPeriod       = "INVALID_PERIOD"
	CodeInvalidFilter       = "INVALID_FILTER"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeUnknownProvider     = "UNKNOWN_PROVIDER"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	CodeCredentialsInvalid  = "CREDENTIALS_INVALID"
	CodeStoreError          = "STORE_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// DashboardSource hands out the dashboard of a provider together with its release func
type DashboardSource interface {
	Dashboard(ctx context.Context, name string) (dashboard.DashboardService, func(), error)
}

// Server serves the dashboard views as JSON
type Server struct {
	mux             *http.ServeMux
	dashboards      DashboardSource
	store           preferences.Store
	defaultProvider string
	version         string
	logger          *zap.Logger
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// Option configures the server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultProvider sets the provider used when a request names none
func WithDefaultProvider(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.defaultProvider = name
		}
	}
}

// WithVersion sets the version reported by /health
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// FilterRequest is the body of POST /api/filters
type FilterRequest struct {
	Action   string `json:"action"`
	Category string `json:"category,omitempty"`
	Value    string `json:"value,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}
