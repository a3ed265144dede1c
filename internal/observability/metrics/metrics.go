package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	walletPostings metric.Int64Counter
	amilCuts       metric.Int64Counter
	coinTransfers  metric.Int64Counter
	fundSweeps     metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "maal"
	}
	meter := provider.Meter(name)

	walletPostings, err := meter.Int64Counter("maal_wallet_postings_total")
	if err != nil {
		return nil, err
	}
	amilCuts, err := meter.Int64Counter("maal_amil_cuts_total")
	if err != nil {
		return nil, err
	}
	coinTransfers, err := meter.Int64Counter("maal_coin_transfers_total")
	if err != nil {
		return nil, err
	}
	fundSweeps, err := meter.Int64Counter("maal_fund_sweeps_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		walletPostings: walletPostings,
		amilCuts:       amilCuts,
		coinTransfers:  coinTransfers,
		fundSweeps:     fundSweeps,
	}, nil
}

// RecordWalletPosting counts a posted transaction by wallet type and direction.
func (m *Metrics) RecordWalletPosting(ctx context.Context, walletType, direction string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("wallet_type", strings.TrimSpace(walletType)),
		attribute.String("direction", strings.TrimSpace(direction)),
	)
	m.walletPostings.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAmilCut counts an amil funding cut by its income source.
func (m *Metrics) RecordAmilCut(ctx context.Context, sourceKind string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("source_kind", strings.TrimSpace(sourceKind)))
	m.amilCuts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCoinTransfer counts a cross-organization coin transfer by strategy.
func (m *Metrics) RecordCoinTransfer(ctx context.Context, strategy string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("strategy", strings.TrimSpace(strategy)))
	m.coinTransfers.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFundSweep counts aggregator fund sweeps by outcome status.
func (m *Metrics) RecordFundSweep(ctx context.Context, status string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("status", strings.TrimSpace(status)))
	m.fundSweeps.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"wallet_type": {},
	"direction":   {},
	"source_kind": {},
	"strategy":    {},
	"status":      {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
