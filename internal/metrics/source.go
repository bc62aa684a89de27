package metrics

import (
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Disk is the capacity of one enumerated disk in bytes.
type Disk struct {
	Mountpoint string
	TotalBytes uint64
	FreeBytes  uint64
}

// Source is the OS collaborator the Reader samples from.
type Source interface {
	// Memory returns total and used system memory in KB.
	Memory() (totalKB, usedKB uint64, err error)
	// Disks returns the enumerated disks in OS order. Only the first is reported,
	// so a source may stop after it.
	Disks() ([]Disk, error)
	// ProcessVirtualMemory returns the virtual memory size of pid in KB.
	ProcessVirtualMemory(pid int) (uint64, error)
}

// SystemSource reads counters through gopsutil.
type SystemSource struct{}

// Memory reads the system-wide virtual memory counters.
func (SystemSource) Memory() (uint64, uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return vm.Total / 1024, vm.Used / 1024, nil
}

// Disks returns the first partition whose usage can be read. Later partitions
// are skipped.
func (SystemSource) Disks() ([]Disk, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	for _, p := range partitions {
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			// Unreadable mounts (permissions, stale network shares) are not enumerable
			continue
		}
		return []Disk{{
			Mountpoint: p.Mountpoint,
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
		}}, nil
	}
	return nil, nil
}

// ProcessVirtualMemory returns the VMS of pid in KB.
func (SystemSource) ProcessVirtualMemory(pid int) (uint64, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.VMS / 1024, nil
}
