package metricsx

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("metricsx: nil meter")
	ErrNilSource = errors.New("metricsx: nil metrics source")
)

// counterDef maps one snapshot field onto an instrument name.
type counterDef struct {
	name string
	help string
	read func(Snapshot) uint64
}

var counterDefs = []counterDef{
	{"sessionkit_validate_ok_total", "Tokens that passed local validation.", func(s Snapshot) uint64 { return s.ValidateOK }},
	{"sessionkit_validate_fail_total", "Tokens rejected by local validation.", func(s Snapshot) uint64 { return s.ValidateFail }},
	{"sessionkit_key_refresh_ok_total", "Successful key set refreshes.", func(s Snapshot) uint64 { return s.KeyRefreshOK }},
	{"sessionkit_key_refresh_fail_total", "Failed key set refreshes.", func(s Snapshot) uint64 { return s.KeyRefreshFail }},
	{"sessionkit_key_serve_stale_total", "Requests served from a stale key set.", func(s Snapshot) uint64 { return s.KeyServeStale }},
	{"sessionkit_claim_refetch_total", "Claim values refetched from the core.", func(s Snapshot) uint64 { return s.ClaimRefetches }},
	{"sessionkit_claim_rejection_total", "Sessions rejected by a claim validator.", func(s Snapshot) uint64 { return s.ClaimRejections }},
	{"sessionkit_remote_check_total", "Opt-in revocation checks against the core.", func(s Snapshot) uint64 { return s.RemoteChecks }},
	{"sessionkit_revocation_total", "Sessions revoked through the SDK.", func(s Snapshot) uint64 { return s.Revocations }},
}

// OTelExporter publishes the counter set through an OpenTelemetry meter as
// observable counters. The source counters stay plain atomics; collection
// cost is only paid when the meter's reader actually scrapes.
type OTelExporter struct {
	registration metric.Registration
}

// NewOTelExporter registers observable counters for every metric on the
// given meter. Close unregisters them.
func NewOTelExporter(meter metric.Meter, source *Metrics) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	instruments := make([]metric.Int64ObservableCounter, 0, len(counterDefs))
	observables := make([]metric.Observable, 0, len(counterDefs))
	for _, def := range counterDefs {
		ins, err := meter.Int64ObservableCounter(def.name, metric.WithDescription(def.help))
		if err != nil {
			return nil, fmt.Errorf("metricsx: create counter %s: %w", def.name, err)
		}
		instruments = append(instruments, ins)
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := source.Snapshot()
		for i, def := range counterDefs {
			observer.ObserveInt64(instruments[i], int64(def.read(snapshot)))
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("metricsx: register callback: %w", err)
	}

	return &OTelExporter{registration: registration}, nil
}

// Close unregisters the exporter's callback from the meter.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
