package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"canonfmt/internal/fmtpipeline"
)

// maxVisibleRows caps the file list: formatting runs cover whole trees, so
// the view shows the in-flight files plus the most recently finished ones
// and folds the rest into a counter.
const maxVisibleRows = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type progressModel struct {
	title      string
	events     <-chan fmtpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []fileItem
	index      map[string]int
	stageLabel string
	width      int
	seq        int
	doneCount  int
	failCount  int
	done       bool
}

type fileItem struct {
	path     string
	status   string
	stage    fmtpipeline.Stage
	elapsed  time.Duration
	seq      int
	running  bool
	finished bool
}

type eventMsg fmtpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders formatting progress.
func NewProgressModel(title string, files []string, events <-chan fmtpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := fmtpipeline.Event(msg)
		cmd := m.applyEvent(ev)
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
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
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	counts := fmt.Sprintf("%d/%d files", m.doneCount+m.failCount, len(m.items))
	if m.failCount > 0 {
		counts += fmt.Sprintf(", %d failed", m.failCount)
	}
	if m.done {
		header = fmt.Sprintf("done: %s [%s]", header, counts)
	} else {
		header = fmt.Sprintf("%s %s [%s]", m.spinner.View(), header, counts)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	rows := m.visibleRows()
	for _, i := range rows {
		item := m.items[i]
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		if item.finished && item.elapsed > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", item.elapsed.Round(time.Millisecond))))
		}
		b.WriteString("\n")
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("... and %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

// visibleRows picks the indices worth a line: every running file first, then
// the most recently finished ones, then queued files up to the cap.
func (m *progressModel) visibleRows() []int {
	rows := make([]int, 0, maxVisibleRows)
	for i := range m.items {
		if m.items[i].running {
			rows = append(rows, i)
			if len(rows) == maxVisibleRows {
				return rows
			}
		}
	}

	finished := make([]int, 0, len(m.items))
	for i := range m.items {
		if m.items[i].finished {
			finished = append(finished, i)
		}
	}
	sort.Slice(finished, func(a, b int) bool {
		return m.items[finished[a]].seq > m.items[finished[b]].seq
	})
	for _, i := range finished {
		if len(rows) == maxVisibleRows {
			return rows
		}
		rows = append(rows, i)
	}

	for i := range m.items {
		if len(rows) == maxVisibleRows {
			break
		}
		if !m.items[i].running && !m.items[i].finished {
			rows = append(rows, i)
		}
	}
	return rows
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev fmtpipeline.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	if ev.File == "" {
		if label != "" {
			m.stageLabel = label
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}

	item := &m.items[idx]
	if label != "" {
		item.status = label
		item.stage = ev.Stage
	}
	m.seq++
	item.seq = m.seq
	switch ev.Status {
	case fmtpipeline.StatusWorking:
		item.running = true
	case fmtpipeline.StatusDone:
		if !item.finished {
			m.doneCount++
			item.elapsed = ev.Elapsed
		}
		item.running, item.finished = false, true
	case fmtpipeline.StatusError:
		if !item.finished {
			m.failCount++
			item.elapsed = ev.Elapsed
		}
		item.running, item.finished = false, true
	}

	total := 0.0
	for _, it := range m.items {
		if it.finished {
			total += 1.0
		} else {
			total += progressFromStage(it.stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage fmtpipeline.Stage) float64 {
	switch stage {
	case fmtpipeline.StageScan:
		return 0.1
	case fmtpipeline.StageParse:
		return 0.4
	case fmtpipeline.StageRender:
		return 0.7
	case fmtpipeline.StageWrite:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(stage fmtpipeline.Stage, status fmtpipeline.Status) string {
	switch status {
	case fmtpipeline.StatusQueued:
		return "queued"
	case fmtpipeline.StatusDone:
		return "done"
	case fmtpipeline.StatusError:
		return "failed"
	case fmtpipeline.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage fmtpipeline.Stage) string {
	switch stage {
	case fmtpipeline.StageScan:
		return "scanning"
	case fmtpipeline.StageParse:
		return "parsing"
	case fmtpipeline.StageRender:
		return "rendering"
	case fmtpipeline.StageWrite:
		return "writing"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "failed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "scanning", "parsing", "rendering", "writing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
