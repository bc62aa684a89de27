package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	totalKB, usedKB uint64
	memErr          error
	disks           []Disk
	diskErr         error
	vmsKB           uint64
	procErr         error
	gotPID          int
}

func (f *fakeSource) Memory() (uint64, uint64, error) {
	return f.totalKB, f.usedKB, f.memErr
}

func (f *fakeSource) Disks() ([]Disk, error) {
	return f.disks, f.diskErr
}

func (f *fakeSource) ProcessVirtualMemory(pid int) (uint64, error) {
	f.gotPID = pid
	return f.vmsKB, f.procErr
}

func TestMemorySummary(t *testing.T) {
	src := &fakeSource{totalKB: 16 * 1024 * 1024, usedKB: 4 * 1024 * 1024}
	r := NewReader(src, 42)
	r.Refresh()

	assert.Equal(t, "4096 MB / 16384 MB (25%)", r.MemorySummary())
	assert.Equal(t, 42, src.gotPID)
}

func TestMemorySummaryPercentBounds(t *testing.T) {
	totals := []uint64{1, 3, 1023, 1024, 2047, 8 * 1024 * 1024, 16*1024*1024 + 7}

	for _, total := range totals {
		for _, used := range []uint64{0, 1, total / 3, total / 2, total - 1, total} {
			src := &fakeSource{totalKB: total, usedKB: used}
			r := NewReader(src, 1)
			r.Refresh()

			want := fmt.Sprintf("%d MB / %d MB (%d%%)", used/1024, total/1024, used*100/total)
			got := r.MemorySummary()
			assert.Equal(t, want, got, "total=%d used=%d", total, used)

			pct := used * 100 / total
			assert.LessOrEqual(t, pct, uint64(100))
		}
	}
}

func TestDiskSummary(t *testing.T) {
	const gb = uint64(1024 * 1024 * 1024)

	tests := []struct {
		name  string
		total uint64
		free  uint64
		want  string
	}{
		{"half used", 100 * gb, 50 * gb, "50 GB used / 100 GB total (50%)"},
		{"empty disk", 10 * gb, 10 * gb, "0 GB used / 10 GB total (0%)"},
		{"full disk", 10 * gb, 0, "10 GB used / 10 GB total (100%)"},
		{"truncated percent", 100, 71, "0 GB used / 0 GB total (29%)"},
		{"fractional gigabytes", 3*gb + gb/2, gb, "2 GB used / 3 GB total (71%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{disks: []Disk{{Mountpoint: "/", TotalBytes: tt.total, FreeBytes: tt.free}}}
			r := NewReader(src, 1)
			r.Refresh()
			assert.Equal(t, tt.want, r.DiskSummary())
		})
	}
}

func TestDiskSummaryPercentMatchesFloor(t *testing.T) {
	for total := uint64(1); total <= 300; total += 7 {
		for free := uint64(0); free <= total; free += 3 {
			src := &fakeSource{disks: []Disk{{TotalBytes: total, FreeBytes: free}}}
			r := NewReader(src, 1)
			r.Refresh()

			want := fmt.Sprintf("0 GB used / 0 GB total (%d%%)", (total-free)*100/total)
			require.Equal(t, want, r.DiskSummary(), "total=%d free=%d", total, free)
		}
	}
}

func TestDiskSummaryUsesFirstDiskOnly(t *testing.T) {
	const gb = uint64(1024 * 1024 * 1024)
	src := &fakeSource{disks: []Disk{
		{Mountpoint: "/", TotalBytes: 20 * gb, FreeBytes: 15 * gb},
		{Mountpoint: "/data", TotalBytes: 500 * gb, FreeBytes: 0},
	}}
	r := NewReader(src, 1)
	r.Refresh()

	assert.Equal(t, "5 GB used / 20 GB total (25%)", r.DiskSummary())
	assert.Equal(t, 20*gb, r.Snapshot().DiskTotalBytes)
}

func TestProcessMemorySummary(t *testing.T) {
	src := &fakeSource{vmsKB: 512 * 1024}
	r := NewReader(src, 7)
	r.Refresh()
	assert.Equal(t, "Process memory: 512 MB", r.ProcessMemorySummary())
}

func TestUnavailablePlaceholders(t *testing.T) {
	src := &fakeSource{
		memErr:  errors.New("no /proc/meminfo"),
		diskErr: errors.New("no partitions"),
		procErr: errors.New("unsupported platform"),
	}
	r := NewReader(src, 1)

	assert.NotPanics(t, r.Refresh)
	assert.Equal(t, MemoryUnavailable, r.MemorySummary())
	assert.Equal(t, DiskUnavailable, r.DiskSummary())
	assert.Equal(t, ProcessUnavailable, r.ProcessMemorySummary())

	snap := r.Snapshot()
	assert.False(t, snap.MemoryOK)
	assert.False(t, snap.DiskOK)
	assert.False(t, snap.ProcessOK)
}

func TestNoDisksEnumerated(t *testing.T) {
	r := NewReader(&fakeSource{totalKB: 1024, usedKB: 512}, 1)
	r.Refresh()
	assert.Equal(t, DiskUnavailable, r.DiskSummary())
	assert.Equal(t, "0 MB / 1 MB (50%)", r.MemorySummary())
}

func TestZeroTotalMemoryIsUnavailable(t *testing.T) {
	r := NewReader(&fakeSource{}, 1)
	r.Refresh()
	assert.Equal(t, MemoryUnavailable, r.MemorySummary())
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	src := &fakeSource{totalKB: 2048, usedKB: 1024, vmsKB: 2048}
	r := NewReader(src, 1)
	r.Refresh()
	assert.Equal(t, "Process memory: 2 MB", r.ProcessMemorySummary())

	src.procErr = errors.New("gone")
	r.Refresh()
	assert.Equal(t, ProcessUnavailable, r.ProcessMemorySummary())
	assert.Equal(t, "1 MB / 2 MB (50%)", r.MemorySummary())
}

func TestSystemReaderDoesNotPanic(t *testing.T) {
	r := NewSystemReader()
	assert.NotPanics(t, r.Refresh)
	assert.NotEmpty(t, r.MemorySummary())
	assert.NotEmpty(t, r.DiskSummary())
	assert.NotEmpty(t, r.ProcessMemorySummary())
}

func TestSystemSourceReadsOnlyFirstReadableDisk(t *testing.T) {
	disks, err := SystemSource{}.Disks()
	if err != nil {
		t.Skipf("partitions unavailable: %v", err)
	}
	assert.LessOrEqual(t, len(disks), 1)
	for _, d := range disks {
		assert.NotEmpty(t, d.Mountpoint)
		assert.GreaterOrEqual(t, d.TotalBytes, d.FreeBytes)
	}
}
