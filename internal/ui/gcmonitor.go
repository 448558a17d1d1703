package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ember/internal/gc"
	"ember/internal/value"
)

// gcMonitorModel renders a live view of one heap's collection cycles,
// patterned on the teacher toolchain's pipeline progress model
// (internal/ui/progress.go there) but retargeted from build-pipeline
// events to gc.Stats snapshots.
type gcMonitorModel struct {
	title   string
	events  <-chan gc.Stats
	spinner spinner.Model
	prog    progress.Model
	log     []string
	last    gc.Stats
	width   int
	done    bool
}

type gcEventMsg gc.Stats
type gcDoneMsg struct{}

// NewGCMonitorModel returns a Bubble Tea model that renders stats
// sent on events until the channel closes.
func NewGCMonitorModel(title string, events <-chan gc.Stats) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &gcMonitorModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *gcMonitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *gcMonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gcEventMsg:
		m.apply(gc.Stats(msg))
		return m, tea.Batch(m.progressCmd(), m.listen())
	case gcDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *gcMonitorModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  cycles: %d   objects: %d   bytes: %d / %d\n",
		m.last.Cycles, m.last.ObjectCount, m.last.BytesAllocated, m.last.NextGC))

	if m.last.NextGC > 0 {
		b.WriteString(m.prog.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, kind := range sortedKinds(m.last.CountByKind) {
		b.WriteString(fmt.Sprintf("  %s %4d\n", padLabel(kindLabel(kind), 14), m.last.CountByKind[kind]))
	}

	b.WriteString("\n")
	start := 0
	if len(m.log) > 8 {
		start = len(m.log) - 8
	}
	for _, line := range m.log[start:] {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}

func (m *gcMonitorModel) apply(s gc.Stats) {
	m.last = s
	m.log = append(m.log, fmt.Sprintf("cycle %d: %d objects, %d bytes live",
		s.Cycles, s.ObjectCount, s.BytesAllocated))
}

func (m *gcMonitorModel) progressCmd() tea.Cmd {
	if m.last.NextGC <= 0 {
		return nil
	}
	pct := float64(m.last.BytesAllocated) / float64(m.last.NextGC)
	if pct > 1 {
		pct = 1
	}
	return m.prog.SetPercent(pct)
}

func (m *gcMonitorModel) listen() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.events
		if !ok {
			return gcDoneMsg{}
		}
		return gcEventMsg(s)
	}
}

func sortedKinds(counts map[value.ObjKind]int) []value.ObjKind {
	kinds := make([]value.ObjKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func kindLabel(k value.ObjKind) string {
	switch k {
	case value.StringKind:
		return "string"
	case value.FunctionKind:
		return "function"
	case value.NativeKind:
		return "native"
	case value.ClosureKind:
		return "closure"
	case value.UpvalueKind:
		return "upvalue"
	case value.ClassKind:
		return "class"
	case value.InstanceKind:
		return "instance"
	case value.BoundMethodKind:
		return "bound_method"
	default:
		return "unknown"
	}
}
