// Package otel wires the OpenTelemetry log pipeline carrying the export
// audit trail. Metrics ride on the global meter; when no meter provider is
// installed they are no-ops.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the log destinations for a session.
type Config struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	LogWriter    io.Writer // session log file, required when enabled
	Endpoint     string    // OTLP collector, optional
	Insecure     bool      // plain HTTP to the collector
}

// Provider owns the session's OTel log provider. A disabled provider is
// inert: flush and shutdown succeed without doing anything.
type Provider struct {
	cfg  Config
	logs *sdklog.LoggerProvider
}

// New builds the log provider for the session. At least one destination
// must be configured when enabled.
func New(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{cfg: cfg}, nil
	}

	ctx := context.Background()

	procs, err := buildProcessors(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	for _, proc := range procs {
		opts = append(opts, sdklog.WithProcessor(proc))
	}

	return &Provider{cfg: cfg, logs: sdklog.NewLoggerProvider(opts...)}, nil
}

// buildProcessors assembles one batch processor per configured destination:
// the session log file, and an OTLP collector when an endpoint is set.
func buildProcessors(ctx context.Context, cfg Config) ([]sdklog.Processor, error) {
	var procs []sdklog.Processor

	if cfg.LogWriter != nil {
		fileExporter, err := stdoutlog.New(
			stdoutlog.WithWriter(cfg.LogWriter),
			stdoutlog.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating file log exporter: %w", err)
		}
		procs = append(procs, sdklog.NewBatchProcessor(fileExporter,
			sdklog.WithExportTimeout(cfg.BatchTimeout),
		))
	}

	if cfg.Endpoint != "" {
		otlpOpts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			otlpOpts = append(otlpOpts, otlploghttp.WithInsecure())
		}
		otlpExporter, err := otlploghttp.New(ctx, otlpOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP log exporter: %w", err)
		}
		procs = append(procs, sdklog.NewBatchProcessor(otlpExporter,
			sdklog.WithExportTimeout(cfg.BatchTimeout),
		))
	}

	if len(procs) == 0 {
		return nil, errors.New("otel enabled but no log writer or endpoint configured")
	}
	return procs, nil
}

// LoggerProvider returns the log provider for the otelslog bridge, nil when
// disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logs
}

// Flush pushes pending log records out. Called after an export so the audit
// trail reaches its destinations before the session moves on.
func (p *Provider) Flush(ctx context.Context) error {
	if p.logs == nil {
		return nil
	}
	if err := p.logs.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush failed: %w", err)
	}
	return nil
}

// Shutdown stops the log provider. Called once when the session ends.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.logs == nil {
		return nil
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		return fmt.Errorf("log shutdown failed: %w", err)
	}
	return nil
}
