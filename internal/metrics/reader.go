// Package metrics samples memory, disk and process counters and renders them as the
// short summaries shown in the editor's info panel.
package metrics

import (
	"fmt"
	"os"

	"flutteredit/internal/errors"
	"flutteredit/internal/log"
)

// Placeholder texts shown when a reading fails.
const (
	MemoryUnavailable  = "Memory usage unavailable"
	DiskUnavailable    = "Disk usage unavailable"
	ProcessUnavailable = "Process memory unavailable"
)

const gib = 1024 * 1024 * 1024

// Snapshot is one sample of the system counters.
type Snapshot struct {
	TotalMemoryKB          uint64
	UsedMemoryKB           uint64
	DiskTotalBytes         uint64 // first disk only
	DiskFreeBytes          uint64 // first disk only
	ProcessVirtualMemoryKB uint64

	MemoryOK  bool
	DiskOK    bool
	ProcessOK bool
}

// Reader holds the most recent Snapshot. It is owned by the UI goroutine.
type Reader struct {
	source   Source
	pid      int
	snapshot Snapshot
}

// NewReader creates a Reader sampling src for process pid.
func NewReader(src Source, pid int) *Reader {
	return &Reader{source: src, pid: pid}
}

// NewSystemReader creates a Reader over the real OS counters for this process.
func NewSystemReader() *Reader {
	return NewReader(SystemSource{}, os.Getpid())
}

// Refresh re-samples every counter. Failures only mark the affected part of the
// snapshot unavailable.
func (r *Reader) Refresh() {
	var s Snapshot

	if total, used, err := r.source.Memory(); err != nil {
		r.logUnavailable("memory", err)
	} else {
		s.TotalMemoryKB, s.UsedMemoryKB, s.MemoryOK = total, used, true
	}

	if disks, err := r.source.Disks(); err != nil {
		r.logUnavailable("disk", err)
	} else if len(disks) > 0 {
		s.DiskTotalBytes, s.DiskFreeBytes, s.DiskOK = disks[0].TotalBytes, disks[0].FreeBytes, true
	}

	if vms, err := r.source.ProcessVirtualMemory(r.pid); err != nil {
		r.logUnavailable("process", err)
	} else {
		s.ProcessVirtualMemoryKB, s.ProcessOK = vms, true
	}

	r.snapshot = s
}

func (r *Reader) logUnavailable(metric string, err error) {
	log.LogWithError(errors.NewKind(errors.MetricsUnavailable, metric+" reading failed", err)).
		With(log.F("metric", metric)).
		Debug("metrics sample incomplete")
}

// Snapshot returns the last sample.
func (r *Reader) Snapshot() Snapshot {
	return r.snapshot
}

// MemorySummary renders "<usedMB> MB / <totalMB> MB (<pct>%)".
func (r *Reader) MemorySummary() string {
	s := r.snapshot
	if !s.MemoryOK || s.TotalMemoryKB == 0 {
		return MemoryUnavailable
	}
	return fmt.Sprintf("%d MB / %d MB (%d%%)",
		s.UsedMemoryKB/1024,
		s.TotalMemoryKB/1024,
		percent(s.UsedMemoryKB, s.TotalMemoryKB))
}

// DiskSummary renders "<usedGB> GB used / <totalGB> GB total (<pct>%)" for the
// first enumerated disk.
func (r *Reader) DiskSummary() string {
	s := r.snapshot
	if !s.DiskOK || s.DiskTotalBytes == 0 {
		return DiskUnavailable
	}
	var used uint64
	if s.DiskFreeBytes < s.DiskTotalBytes {
		used = s.DiskTotalBytes - s.DiskFreeBytes
	}
	return fmt.Sprintf("%d GB used / %d GB total (%d%%)",
		used/gib,
		s.DiskTotalBytes/gib,
		percent(used, s.DiskTotalBytes))
}

// ProcessMemorySummary renders the virtual memory size of this process.
func (r *Reader) ProcessMemorySummary() string {
	s := r.snapshot
	if !s.ProcessOK {
		return ProcessUnavailable
	}
	return fmt.Sprintf("Process memory: %d MB", s.ProcessVirtualMemoryKB/1024)
}

// percent truncates part/whole*100 toward zero. Integer arithmetic keeps values
// such as 29/100 from landing on 28.
func percent(part, whole uint64) uint {
	return uint(part * 100 / whole)
}
