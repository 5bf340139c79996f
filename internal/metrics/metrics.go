package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prom.NewRegistry()

	// BuildsTotal counts completed generation runs in watch mode.
	BuildsTotal = prom.NewCounter(prom.CounterOpts{Namespace: "bookgen", Name: "builds_total", Help: "Total book generation runs"})
	// BuildsFailedTotal counts failed generation runs in watch mode.
	BuildsFailedTotal = prom.NewCounter(prom.CounterOpts{Namespace: "bookgen", Name: "builds_failed_total", Help: "Failed book generation runs"})
	// LastBuildStubs reports the stub pages written by the most recent run.
	LastBuildStubs = prom.NewGauge(prom.GaugeOpts{Namespace: "bookgen", Name: "last_build_stubs", Help: "Stub pages written by the most recent completed run"})
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(func() {
		registry.MustRegister(BuildsTotal, BuildsFailedTotal, LastBuildStubs)
		registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	})
}

// Serve exposes /metrics and /healthz on addr until ctx is cancelled.
// One-shot generate runs never call this; only watch mode serves endpoints.
func Serve(ctx context.Context, addr string) error {
	register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errChan := make(chan error, 1)
	go func() { errChan <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
