package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/raywall/ddbprobe/dyndb"
	"github.com/raywall/ddbprobe/pkg/config"
	"github.com/raywall/ddbprobe/pkg/metrics"
	"github.com/rs/zerolog"
)

// Result é o desfecho de uma probe: Outcome em caso de sucesso, Err em
// caso de falha.
type Result struct {
	Name    string
	Outcome Outcome
	Err     *ProbeError
	Elapsed time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

// Summary agrega os resultados de uma execução completa.
type Summary struct {
	Results []Result
}

func (s Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

func (s Summary) Failed() int {
	return len(s.Results) - s.Passed()
}

// Runner executa as probes em sequência contra uma única tabela.
type Runner struct {
	cfg     config.ProbeConfig
	records dyndb.Store[Record]
	raw     dyndb.Store[map[string]any]
	out     io.Writer
	log     zerolog.Logger
	metrics *metrics.Processor
}

type Option func(*Runner)

// WithOutput define onde o relatório é escrito (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func WithMetrics(p *metrics.Processor) Option {
	return func(r *Runner) { r.metrics = p }
}

// NewRunner cria o runner. cfg deve ter sido validado.
func NewRunner(client dyndb.DynamoDBClient, cfg *config.ProbeConfig, opts ...Option) *Runner {
	r := &Runner{
		cfg: *cfg,
		records: dyndb.New(client, dyndb.TableConfig[Record]{
			TableName: cfg.Table.Name,
			HashKey:   AttrHashKey,
			SortKey:   AttrSortKey,
		}),
		raw: dyndb.New(client, dyndb.TableConfig[map[string]any]{
			TableName: cfg.Table.Name,
			HashKey:   AttrHashKey,
			SortKey:   AttrSortKey,
		}),
		out: os.Stdout,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executa todas as probes, sempre na mesma ordem. Nenhuma falha
// interrompe a execução.
func (r *Runner) Run(ctx context.Context) Summary {
	r.printf("Starting DynamoDB search tests...\n\n")
	r.printf("Table: %s\n", r.cfg.Table.Name)
	r.printf("Region: %s\n", r.cfg.Table.Region)

	var summary Summary
	for i, p := range r.Probes() {
		summary.Results = append(summary.Results, r.runProbe(ctx, i+1, p))
	}

	r.printf("\n=== Summary: %d passed, %d failed ===\n", summary.Passed(), summary.Failed())
	for _, res := range summary.Results {
		if !res.OK() {
			r.printf("  ✗ %s: %v\n", res.Name, res.Err.Err)
		}
	}
	r.printf("\n=== Tests Complete ===\n\n")
	return summary
}

func (r *Runner) runProbe(ctx context.Context, n int, p Probe) Result {
	r.printf("\n=== Test %d: %s ===\n", n, p.Title)

	log := r.log.With().Str("probe", p.Name).Logger()
	log.Debug().Msg("probe started")

	if r.cfg.Probes.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Probes.Timeout)
		defer cancel()
	}

	var details bytes.Buffer
	start := time.Now()
	outcome, err := p.run(ctx, &details)
	res := Result{Name: p.Name, Elapsed: time.Since(start)}

	if err != nil {
		res.Err = &ProbeError{Probe: p.Name, Err: err}
		r.printf("✗ Error: %v\n", err)
		if code := res.Err.Code(); code != "" {
			r.printf("  Code: %s\n", code)
		}
		log.Warn().Err(err).Dur("elapsed", res.Elapsed).Msg("probe failed")
		r.emit(metrics.ProbeErrors, 1, p.Name)
		return res
	}

	res.Outcome = outcome
	r.printf("✓ Found %d items\n", outcome.Found)
	if outcome.Filtered {
		r.printf("  (scanned %d items, more pages: %s)\n", outcome.Scanned, yesNo(outcome.HasMore))
		if outcome.Found == 0 && outcome.HasMore {
			r.printf("  Note: Limit is applied before the filter; 0 found with more pages does not mean no matches.\n")
		}
	}
	r.write(details.Bytes())

	log.Info().
		Int("found", outcome.Found).
		Int32("scanned", outcome.Scanned).
		Bool("has_more", outcome.HasMore).
		Dur("elapsed", res.Elapsed).
		Msg("probe finished")
	r.emit(metrics.ProbeFound, float64(outcome.Found), p.Name)
	r.emit(metrics.ProbeScanned, float64(outcome.Scanned), p.Name)
	r.emit(metrics.ProbeDuration, float64(res.Elapsed.Milliseconds()), p.Name)
	return res
}

func (r *Runner) emit(id string, value float64, probe string) {
	if r.metrics == nil {
		return
	}
	if err := r.metrics.Emit(id, value, "probe:"+probe); err != nil {
		r.log.Warn().Err(err).Str("metric", id).Msg("failed to emit metric")
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) write(b []byte) {
	_, _ = r.out.Write(b)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
