package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/nginx-exporter/pkg/accesslog"
	"mercator-hq/nginx-exporter/pkg/aggregate"
	"mercator-hq/nginx-exporter/pkg/config"
	"mercator-hq/nginx-exporter/pkg/exposition"
	"mercator-hq/nginx-exporter/pkg/tail"
	"mercator-hq/nginx-exporter/pkg/telemetry/logging"
	"mercator-hq/nginx-exporter/pkg/telemetry/metrics"
	"mercator-hq/nginx-exporter/pkg/telemetry/tracing"
)

// ReasonLineTooLong labels lines dropped for exceeding the size limit.
const ReasonLineTooLong = "line_too_long"

// Options wires the pipeline stages into a Coordinator.
type Options struct {
	Tailer     *tail.Tailer
	Parser     *accesslog.Parser
	Aggregator *aggregate.Aggregator

	// MetricName names the request duration family.
	MetricName string

	// Metrics receives self-metrics. Optional.
	Metrics *metrics.Collector

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Tracer defaults to the global OpenTelemetry provider.
	Tracer trace.Tracer
}

// Stats summarises one pass.
type Stats struct {
	Lines       int
	Records     int
	ParseErrors int
	FileErrors  int
	Rotations   int
	Oversized   int
}

// Coordinator serializes scrapes over the shared pipeline state.
type Coordinator struct {
	mu sync.Mutex

	tailer     *tail.Tailer
	parser     *accesslog.Parser
	aggregator *aggregate.Aggregator
	requests   *prometheus.Registry
	metrics    *metrics.Collector
	logger     *slog.Logger
	tracer     trace.Tracer

	last Stats
}

// New creates a Coordinator. Tailer, Parser, and Aggregator are required.
func New(opts Options) (*Coordinator, error) {
	if opts.Tailer == nil || opts.Parser == nil || opts.Aggregator == nil {
		return nil, errors.New("scrape: tailer, parser, and aggregator are required")
	}
	if opts.MetricName == "" {
		opts.MetricName = config.DefaultMetricName
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector(metrics.Config{Enabled: false}, nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracing.InstrumentationName)
	}

	requests := prometheus.NewRegistry()
	if err := requests.Register(exposition.NewCollector(opts.MetricName, "", opts.Aggregator)); err != nil {
		return nil, fmt.Errorf("register %s: %w", opts.MetricName, err)
	}

	return &Coordinator{
		tailer:     opts.Tailer,
		parser:     opts.Parser,
		aggregator: opts.Aggregator,
		requests:   requests,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		tracer:     opts.Tracer,
	}, nil
}

// FromConfig builds the full pipeline described by cfg.
func FromConfig(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*Coordinator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := aggregate.ParseMode(cfg.Exporter.Mode)
	if err != nil {
		return nil, err
	}
	agg, err := aggregate.New(aggregate.Config{
		Mode:        mode,
		ExactStatus: cfg.Exporter.StatusGrouping == config.GroupingExact,
		Quantiles:   cfg.Exporter.Quantiles,
	})
	if err != nil {
		return nil, err
	}

	tl, err := tail.New(tail.Config{
		Pattern:      cfg.Source.LogPath,
		MaxLineBytes: cfg.Source.MaxLineBytes,
	}, tail.NewStore(), logger)
	if err != nil {
		return nil, err
	}

	f := cfg.Source.Fields
	parser := accesslog.NewParser(accesslog.Fields{
		Method:      f.Method,
		Path:        f.Path,
		Host:        f.Host,
		StatusCode:  f.StatusCode,
		RequestTime: f.RequestTime,
	})

	return New(Options{
		Tailer:     tl,
		Parser:     parser,
		Aggregator: agg,
		MetricName: cfg.Exporter.MetricName,
		Metrics:    collector,
		Logger:     logger,
	})
}

// Scrape runs one full pass and returns the exposition text. The returned
// error reports problems rendering some series; the text is still usable.
func (c *Coordinator) Scrape(ctx context.Context) ([]byte, error) {
	body, _, err := c.scrape(ctx)
	return body, err
}

func (c *Coordinator) scrape(ctx context.Context) ([]byte, Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, "scrape")
	defer span.End()

	start := time.Now()
	st := c.collect(ctx)
	c.last = st

	families, gatherErr := c.requests.Gather()
	c.aggregator.EndScrape()

	c.metrics.SetSeries(c.aggregator.Len())
	c.metrics.SetFilesTracked(c.tailer.Store().Len())
	c.metrics.ObserveScrape(time.Since(start))

	self, selfErr := c.metrics.Gather()

	var buf bytes.Buffer
	encodeErr := exposition.Encode(&buf, append(families, self...))

	c.logger.DebugContext(ctx, "scrape completed",
		"lines", st.Lines,
		"records", st.Records,
		"parse_errors", st.ParseErrors,
		"file_errors", st.FileErrors,
		"duration", time.Since(start),
	)

	err := errors.Join(gatherErr, selfErr, encodeErr)
	span.SetAttributes(
		tracing.AttrLinesRead.Int(st.Lines),
		tracing.AttrRecords.Int(st.Records),
		tracing.AttrParseErrors.Int(st.ParseErrors+st.Oversized),
		tracing.AttrFileErrors.Int(st.FileErrors),
		tracing.AttrRotations.Int(st.Rotations),
		tracing.AttrSeries.Int(c.aggregator.Len()),
		tracing.AttrMode.String(string(c.aggregator.Mode())),
	)
	tracing.SetStatus(span, err)

	return buf.Bytes(), st, err
}

// LastStats returns the statistics of the most recent pass.
func (c *Coordinator) LastStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// collect tails every file and folds new records into the aggregate.
// The caller holds c.mu.
func (c *Coordinator) collect(ctx context.Context) Stats {
	var st Stats

	res := c.tailer.Tail(func(path string, line []byte) {
		if accesslog.IsBlank(line) {
			return
		}
		rec, err := c.parser.Parse(line)
		if err != nil {
			st.ParseErrors++
			c.metrics.RecordParseError(accesslog.Reason(err))
			c.logger.DebugContext(logging.WithFile(ctx, path), "skipped malformed log line",
				"reason", accesslog.Reason(err),
				"error", err,
			)
			return
		}
		c.aggregator.Apply(rec)
		st.Records++
	})

	span := trace.SpanFromContext(ctx)
	for _, fr := range res.Files {
		fctx := logging.WithFile(ctx, fr.Path)
		fileAttr := trace.WithAttributes(tracing.AttrFile.String(fr.Path))
		if fr.Err != nil {
			st.FileErrors++
			c.metrics.RecordFileError()
			c.logger.WarnContext(fctx, "failed to read log file", "error", fr.Err)
			span.RecordError(fr.Err, fileAttr)
		}
		if fr.Rotated {
			st.Rotations++
			c.metrics.RecordRotation()
			span.AddEvent("log rotation", fileAttr)
		}
		if fr.Oversized > 0 {
			st.Oversized += fr.Oversized
			c.metrics.RecordParseErrors(ReasonLineTooLong, fr.Oversized)
		}
	}

	st.Lines = res.Lines()
	c.metrics.RecordLines(st.Lines)
	return st
}

// ServeHTTP implements http.Handler. It always answers 200 once routed.
func (c *Coordinator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := c.Scrape(r.Context())
	if err != nil {
		c.logger.WarnContext(r.Context(), "scrape rendered with errors", "error", err)
	}

	w.Header().Set("Content-Type", exposition.ContentType)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}
