// internal/server/router.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"advisor-services/internal/common/config"
	"advisor-services/internal/common/database"
	"advisor-services/internal/common/genai"
	commonhttp "advisor-services/internal/common/http"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/common/metrics"
	"advisor-services/internal/common/observability"
	"advisor-services/internal/dataset"
	studentchat "advisor-services/internal/services/chatbot/student-chat"
	generatesop "advisor-services/internal/services/documents/generate-sop"
	sopconversation "advisor-services/internal/services/documents/sop-conversation"
	"advisor-services/internal/services/matching/recommendations"
	universityrecommendations "advisor-services/internal/services/matching/university-recommendations"
	visaguidance "advisor-services/internal/services/visa/visa-guidance"
	"advisor-services/internal/store/universities"
	"advisor-services/pkg/registry"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Deps are the process-wide resources shared by every route. Universities,
// Sessions and Generator may be nil; routes that need them are not mounted.
type Deps struct {
	Students      *dataset.StudentSet
	Visas         *dataset.VisaCatalog
	Universities  universities.Store
	Sessions      sopconversation.SessionStore
	Generator     genai.Generator
	Observability *observability.Observability
	Backends      map[string]database.Pinger
	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler
	// Catalog defaults to registry.Default().
	Catalog *registry.Catalog
}

func (d Deps) missing(requires []string) string {
	for _, r := range requires {
		switch {
		case r == registry.RequiresUniversities && d.Universities == nil,
			r == registry.RequiresSessions && d.Sessions == nil,
			r == registry.RequiresGeneration && d.Generator == nil:
			return r
		}
	}
	return ""
}

// newHandlers builds one handler per catalog endpoint id. Handlers whose
// backends are nil are still built; NewRouter skips mounting them.
func newHandlers(cfg *config.Config, deps Deps, log logger.Logger) (map[string]http.Handler, error) {
	rc := recommendations.LoadConfig()
	rc.MaxResults = config.GetServiceConfig(cfg, recommendations.ServiceName).MaxResults

	usvc := config.GetServiceConfig(cfg, universityrecommendations.ServiceName)
	uc := universityrecommendations.LoadConfig()
	uc.MaxResults = usvc.MaxResults
	uc.Timeout = config.GetDuration(usvc.Timeout)

	sop, err := generatesop.NewHandler(generatesop.LoadConfig(), deps.Students, log)
	if err != nil {
		return nil, err
	}

	sc := sopconversation.LoadConfig()
	sc.Timeout = config.GetDuration(config.GetServiceConfig(cfg, sopconversation.ServiceName).Timeout)
	conv := sopconversation.NewHandler(sc, deps.Universities, deps.Sessions, deps.Generator, log)

	return map[string]http.Handler{
		"chat":                       studentchat.NewHandler(deps.Students, log),
		"visa-chat":                  visaguidance.NewHandler(deps.Visas, log),
		"recommendations":            recommendations.NewHandler(rc, deps.Students, log),
		"university-recommendations": universityrecommendations.NewHandler(uc, deps.Universities, deps.Generator, log),
		"generate-sop":               sop,
		"start-sop-conversation":     http.HandlerFunc(conv.ServeStart),
		"continue-sop-conversation":  http.HandlerFunc(conv.ServeContinue),
		"get-sop-draft":              http.HandlerFunc(conv.ServeDraft),
	}, nil
}

// NewRouter mounts every enabled catalog endpoint whose backends are
// available, plus /health, /ready, /metrics and /services.
func NewRouter(cfg *config.Config, deps Deps, log logger.Logger) (http.Handler, error) {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = registry.Default()
	}
	handlers, err := newHandlers(cfg, deps, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	httpLog := log.With(map[string]interface{}{"component": "http"})
	mounted := make([]registry.Endpoint, 0, len(catalog.Endpoints))

	for _, ep := range catalog.Endpoints {
		if !config.IsServiceEnabled(cfg, ep.Service) {
			continue
		}
		if missing := deps.missing(ep.Requires); missing != "" {
			log.Warn("endpoint not mounted", map[string]interface{}{"endpoint": ep.ID, "missing": missing})
			continue
		}
		h, ok := handlers[ep.ID]
		if !ok {
			return nil, fmt.Errorf("no handler for endpoint %q", ep.ID)
		}
		mux.Handle(ep.Pattern(), commonhttp.Instrument(ep.Path, httpLog,
			traced(deps.Observability, ep.Path, h), recorders(deps.Observability)...))
		mounted = append(mounted, ep)
		log.Debug("endpoint mounted", map[string]interface{}{"route": ep.Pattern()})
	}

	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteJSON(w, http.StatusOK, registry.Catalog{Version: catalog.Version, Endpoints: mounted})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckAll(r.Context(), 2*time.Second, deps.Backends); err != nil {
			commonhttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	mux.Handle("GET /metrics", metricsHandler)

	return commonhttp.WithRequestID(mux), nil
}

func recorders(obs *observability.Observability) []commonhttp.Recorder {
	return []commonhttp.Recorder{
		func(_ context.Context, route, method string, status int, d time.Duration) {
			metrics.ObserveHTTP(route, method, status, d)
		},
		func(ctx context.Context, route, _ string, status int, d time.Duration) {
			obs.RecordRequest(ctx, route, status, d)
		},
	}
}

func traced(obs *observability.Observability, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := obs.StartSpan(r.Context(), route,
			attribute.String("http.method", r.Method),
			attribute.String("request.id", commonhttp.RequestID(r.Context())),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
