package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por Prometheus ou Logging sem alterar a lógica das probes.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
	Close() error
}

// MetricType define os tipos suportados.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition armazena os metadados da métrica (nome real, tipo).
type MetricDefinition struct {
	Name string
	Type MetricType
}

// IDs das métricas emitidas pelo runner.
const (
	ProbeFound    = "probe_found"
	ProbeScanned  = "probe_scanned"
	ProbeDuration = "probe_duration"
	ProbeErrors   = "probe_errors"
)

// DefaultDefinitions liga cada ID ao nome e tipo enviados ao provider.
var DefaultDefinitions = map[string]MetricDefinition{
	ProbeFound:    {Name: "probe.found", Type: TypeGauge},
	ProbeScanned:  {Name: "probe.scanned", Type: TypeGauge},
	ProbeDuration: {Name: "probe.duration_ms", Type: TypeHistogram},
	ProbeErrors:   {Name: "probe.errors", Type: TypeCount},
}
