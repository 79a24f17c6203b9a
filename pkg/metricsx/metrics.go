// Package metricsx collects low-overhead operational counters for the SDK:
// validation outcomes, key-cache refresh behaviour, and claim refetches.
// Counters are plain atomics on the hot path; exporting them to a metrics
// backend is a separate, optional concern (see the OpenTelemetry exporter).
package metricsx

import "sync/atomic"

// Metrics is a process-wide counter set. All methods are safe for concurrent
// use and safe on a nil receiver, so components can treat metrics as
// strictly optional.
type Metrics struct {
	validateOK      atomic.Uint64
	validateFail    atomic.Uint64
	keyRefreshOK    atomic.Uint64
	keyRefreshFail  atomic.Uint64
	keyServeStale   atomic.Uint64
	claimRefetches  atomic.Uint64
	claimRejections atomic.Uint64
	remoteChecks    atomic.Uint64
	revocations     atomic.Uint64
}

// New returns an empty counter set.
func New() *Metrics {
	return &Metrics{}
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	ValidateOK      uint64
	ValidateFail    uint64
	KeyRefreshOK    uint64
	KeyRefreshFail  uint64
	KeyServeStale   uint64
	ClaimRefetches  uint64
	ClaimRejections uint64
	RemoteChecks    uint64
	Revocations     uint64
}

// Snapshot copies the counters. Counters are read individually, so the
// snapshot is not a single atomic cut - fine for monitoring.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		ValidateOK:      m.validateOK.Load(),
		ValidateFail:    m.validateFail.Load(),
		KeyRefreshOK:    m.keyRefreshOK.Load(),
		KeyRefreshFail:  m.keyRefreshFail.Load(),
		KeyServeStale:   m.keyServeStale.Load(),
		ClaimRefetches:  m.claimRefetches.Load(),
		ClaimRejections: m.claimRejections.Load(),
		RemoteChecks:    m.remoteChecks.Load(),
		Revocations:     m.revocations.Load(),
	}
}

func (m *Metrics) ValidateOK() {
	if m != nil {
		m.validateOK.Add(1)
	}
}

func (m *Metrics) ValidateFail() {
	if m != nil {
		m.validateFail.Add(1)
	}
}

func (m *Metrics) KeyRefreshOK() {
	if m != nil {
		m.keyRefreshOK.Add(1)
	}
}

func (m *Metrics) KeyRefreshFail() {
	if m != nil {
		m.keyRefreshFail.Add(1)
	}
}

func (m *Metrics) KeyServeStale() {
	if m != nil {
		m.keyServeStale.Add(1)
	}
}

func (m *Metrics) ClaimRefetch() {
	if m != nil {
		m.claimRefetches.Add(1)
	}
}

func (m *Metrics) ClaimRejection() {
	if m != nil {
		m.claimRejections.Add(1)
	}
}

func (m *Metrics) RemoteCheck() {
	if m != nil {
		m.remoteChecks.Add(1)
	}
}

func (m *Metrics) Revocation() {
	if m != nil {
		m.revocations.Add(1)
	}
}
