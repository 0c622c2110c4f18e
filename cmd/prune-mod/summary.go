package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/naiplawan/prunemod/internal/diskusage"
	"github.com/naiplawan/prunemod/internal/prune"
)

const labelWidth = 20

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(labelWidth).Align(lipgloss.Right)
	valueStyle = lipgloss.NewStyle().Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type summary struct {
	Stats    prune.Stats
	Duration time.Duration
	DryRun   bool

	DiskBefore *diskusage.Status
	DiskAfter  *diskusage.Status
}

func (s summary) lines() [][2]string {
	lines := [][2]string{
		{"files total", humanize.Comma(s.Stats.FilesTotal)},
		{"files removed", humanize.Comma(s.Stats.FilesRemoved)},
		{"size before", formatBytes(s.Stats.SizeBefore)},
		{"size removed", formatBytes(s.Stats.SizeRemoved)},
		{"size after", formatBytes(s.Stats.SizeAfter)},
	}
	if free := s.diskFree(); free != "" {
		lines = append(lines, [2]string{"disk free", free})
	}
	return append(lines, [2]string{"duration", formatDuration(s.Duration)})
}

func (s summary) diskFree() string {
	switch {
	case s.DiskAfter != nil && s.DiskBefore != nil && s.DiskAfter.Free != s.DiskBefore.Free:
		return fmt.Sprintf("%s (was %s)", humanize.IBytes(s.DiskAfter.Free), humanize.IBytes(s.DiskBefore.Free))
	case s.DiskAfter != nil:
		return humanize.IBytes(s.DiskAfter.Free)
	case s.DiskBefore != nil:
		return humanize.IBytes(s.DiskBefore.Free)
	}
	return ""
}

func (s summary) render() string {
	var b strings.Builder
	b.WriteString("\n")
	if s.DryRun {
		b.WriteString(titleStyle.Render("[DRY RUN]") + "\n")
	}
	for _, line := range s.lines() {
		fmt.Fprintf(&b, "%s: %s\n", labelStyle.Render(line[0]), valueStyle.Render(line[1]))
	}
	b.WriteString("\n")
	return b.String()
}

func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
