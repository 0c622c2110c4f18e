// Package diskusage reports free and used space of the volume holding a path.
package diskusage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// ErrNoUsage is returned when no ancestor of the path can be measured.
var ErrNoUsage = errors.New("disk usage unavailable")

type Status struct {
	Path        string // Existing directory that was measured
	Mount       string
	Device      string
	Fstype      string
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// For measures the volume holding path. path does not need to exist; its
// nearest existing ancestor is measured instead.
func For(path string) (Status, error) {
	dir, err := existingAncestor(path)
	if err != nil {
		return Status{}, err
	}

	usage, err := disk.Usage(dir)
	if err != nil {
		return Status{}, err
	}
	if usage.Total == 0 {
		return Status{}, ErrNoUsage
	}

	status := Status{
		Path:        dir,
		Total:       usage.Total,
		Free:        usage.Free,
		Used:        usage.Used,
		UsedPercent: usage.UsedPercent,
		Fstype:      usage.Fstype,
	}
	if part, ok := mountFor(dir); ok {
		status.Mount = part.Mountpoint
		status.Device = part.Device
		if status.Fstype == "" {
			status.Fstype = part.Fstype
		}
	}
	return status, nil
}

func existingAncestor(path string) (string, error) {
	current, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoUsage
		}
		current = parent
	}
}

// mountFor picks the partition with the longest mount point containing dir.
// Partition listing failures only cost the mount details.
func mountFor(dir string) (disk.PartitionStat, bool) {
	partitions, err := disk.Partitions(true)
	if err != nil {
		return disk.PartitionStat{}, false
	}

	var (
		best  disk.PartitionStat
		found bool
	)
	for _, part := range partitions {
		if !within(dir, part.Mountpoint) {
			continue
		}
		if !found || len(part.Mountpoint) > len(best.Mountpoint) {
			best = part
			found = true
		}
	}
	return best, found
}

func within(dir, mount string) bool {
	if mount == "" {
		return false
	}
	if dir == mount || mount == string(filepath.Separator) {
		return true
	}
	return strings.HasPrefix(dir, strings.TrimSuffix(mount, string(filepath.Separator))+string(filepath.Separator))
}
