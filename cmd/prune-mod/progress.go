package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/naiplawan/prunemod/internal/prune"
)

const progressInterval = 100 * time.Millisecond

var (
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

type tickMsg time.Time

type pruneDoneMsg struct {
	stats prune.Stats
	err   error
}

// progressModel polls the pruner's counters while the prune runs in a
// tea.Cmd.
type progressModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	pruner *prune.Pruner

	frame   int
	start   time.Time
	current prune.Stats

	done   bool
	result prune.Stats
	err    error
}

func newProgressModel(ctx context.Context, pruner *prune.Pruner) progressModel {
	ctx, cancel := context.WithCancel(ctx)
	return progressModel{
		ctx:    ctx,
		cancel: cancel,
		pruner: pruner,
		start:  time.Now(),
	}
}

func pruneCmd(ctx context.Context, pruner *prune.Pruner) tea.Cmd {
	return func() tea.Msg {
		stats, err := pruner.Prune(ctx)
		return pruneDoneMsg{stats: stats, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(pruneCmd(m.ctx, m.pruner), tickCmd())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// The prune returns early once canceled; wait for its result
			m.cancel()
		}
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.current = m.pruner.Progress()
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tickCmd()
	case pruneDoneMsg:
		m.done = true
		m.result = msg.stats
		m.err = msg.err
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return progressStyle.Render(fmt.Sprintf("%s Pruning %s  scanned %s  removed %s  freed %s  %s",
		spinnerFrames[m.frame],
		m.pruner.Dir(),
		humanize.Comma(m.current.FilesTotal),
		humanize.Comma(m.current.FilesRemoved),
		humanize.IBytes(uint64(max(m.current.SizeRemoved, 0))),
		formatDuration(time.Since(m.start)),
	)) + "\n"
}

// runWithProgress prunes while rendering live counters to out.
func runWithProgress(ctx context.Context, pruner *prune.Pruner, out io.Writer) (prune.Stats, error) {
	m := newProgressModel(ctx, pruner)
	defer m.cancel()

	final, err := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil {
		return prune.Stats{}, err
	}
	fm, ok := final.(progressModel)
	if !ok || !fm.done {
		return prune.Stats{}, context.Canceled
	}
	return fm.result, fm.err
}
