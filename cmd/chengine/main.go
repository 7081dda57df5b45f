package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/transferia/chengine/cmd/chengine/apply"
	"github.com/transferia/chengine/cmd/chengine/kinds"
	"github.com/transferia/chengine/cmd/chengine/reflect"
	"github.com/transferia/chengine/cmd/chengine/render"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/errors"
	"github.com/transferia/chengine/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/log/zap"
)

var (
	defaultLogLevel  = "info"
	defaultLogConfig = "console"
)

func main() {
	logLevel := defaultLogLevel
	logConfig := defaultLogConfig
	metricsAddr := ""

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineStats := stats.NewEngineStats(registry)

	rootCommand := &cobra.Command{
		Use:          "chengine",
		Short:        "ClickHouse MergeTree table engines tool",
		Example:      "./chengine help",
		Version:      getVersionString(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(context.Background())

			loggerConfig, err := logger.NewConfig(logConfig, logLevel)
			if err != nil {
				return err
			}
			logger.Log = zap.Must(loggerConfig)

			if metricsAddr != "" {
				go func() {
					rootMux := http.NewServeMux()
					rootMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
						ErrorHandling: promhttp.PanicOnError,
					}))
					logger.Log.Infof("Prometheus is uprising on %v", metricsAddr)
					if err := http.ListenAndServe(metricsAddr, rootMux); err != nil {
						logger.Log.Error("failed to serve metrics", log.Error(err))
					}
				}()
			}
			return nil
		},
	}

	rootCommand.AddCommand(kinds.KindsCommand())
	rootCommand.AddCommand(render.RenderCommand(engineStats))
	rootCommand.AddCommand(apply.ApplyCommand(engineStats))
	rootCommand.AddCommand(reflect.ReflectCommand(engineStats))
	rootCommand.AddCommand(versionCommand())

	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Specifies logging level for output logs (\"panic\", \"fatal\", \"error\", \"warning\", \"info\", \"debug\")")
	rootCommand.PersistentFlags().StringVar(&logConfig, "log-config", defaultLogConfig, "Specifies logging config for output logs (\"console\", \"json\", \"minimal\")")
	rootCommand.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on given address, e.g. \":9091\"")

	executed, err := rootCommand.ExecuteC()
	if err != nil {
		errors.LogFatalError(logger.Log, err, executed.Name())
		os.Exit(1)
	}
}
