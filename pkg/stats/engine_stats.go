package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/transferia/chengine/pkg/errors/coded"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	// Metric names
	MetricEngineBuilt     = "chengine_engine_built_total"
	MetricEngineReflected = "chengine_engine_reflected_total"
	MetricDDLExecuted     = "chengine_ddl_executed_total"
	MetricErrors          = "chengine_errors_total"

	// Label names
	LabelKind      = "kind"
	LabelOperation = "operation"
	LabelErrorCode = "error_code"

	// Label values
	OperationBuild   = "build"
	OperationReflect = "reflect"
	OperationDDL     = "ddl"

	unknownErrorCode = "unknown"
)

type EngineStats struct {
	Built     *prometheus.CounterVec
	Reflected *prometheus.CounterVec
	DDL       prometheus.Counter
	Errors    *prometheus.CounterVec
}

func NewEngineStats(registry prometheus.Registerer) *EngineStats {
	s := &EngineStats{
		Built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricEngineBuilt,
			Help: "Table engines built, by engine kind",
		}, []string{LabelKind}),
		Reflected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricEngineReflected,
			Help: "Table engines restored from catalog definitions, by engine kind",
		}, []string{LabelKind}),
		DDL: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricDDLExecuted,
			Help: "CREATE TABLE queries executed",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricErrors,
			Help: "Failed operations, by error code",
		}, []string{LabelOperation, LabelErrorCode}),
	}
	if registry != nil {
		registry.MustRegister(s.Built, s.Reflected, s.DDL, s.Errors)
	}
	return s
}

func (s *EngineStats) EngineBuilt(kind string) {
	s.Built.WithLabelValues(kind).Inc()
}

func (s *EngineStats) EngineReflected(kind string) {
	s.Reflected.WithLabelValues(kind).Inc()
}

func (s *EngineStats) DDLExecuted() {
	s.DDL.Inc()
}

// Failed counts err under the code of the outermost coded error in its chain.
func (s *EngineStats) Failed(operation string, err error) {
	code := unknownErrorCode
	var codedErr coded.CodedError
	if xerrors.As(err, &codedErr) {
		code = codedErr.Code().ID()
	}
	s.Errors.WithLabelValues(operation, code).Inc()
}
