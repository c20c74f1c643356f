// Package ui provides the optional terminal task browser.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	filterStyle = lipgloss.NewStyle().Italic(true)
)

// RunTUI starts the task browser over the storage file at path.
func RunTUI(ctx context.Context, path string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	path         string
	loadErr      error
	tasks        []*task.Task
	counts       map[task.Status]int
	filter       *task.Status
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(path string) *tuiModel {
	return &tuiModel{
		path:         path,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.setFilter(task.StatusNotStarted)
			return m, nil
		case "2":
			m.setFilter(task.StatusInProgress)
			return m, nil
		case "3":
			m.setFilter(task.StatusBlocked)
			return m, nil
		case "4":
			m.setFilter(task.StatusCompleted)
			return m, nil
		case "0":
			m.filter = nil
			m.refresh()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) setFilter(s task.Status) {
	m.filter = &s
	m.refresh()
}

// refresh reloads the collection from disk. Load diagnostics are discarded:
// the corrupt-file warning would repaint over the UI every tick.
func (m *tuiModel) refresh() {
	logger := logging.New(io.Discard, logging.Options{})
	st, err := store.Open(m.path, logger)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.counts = map[task.Status]int{}
	for _, t := range st.List(store.Filter{}) {
		m.counts[t.Status]++
	}
	m.tasks = st.List(store.Filter{Status: m.filter})
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskdeck") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading tasks file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  Not started: %d  In progress: %d  Blocked: %d  Completed: %d\n\n",
		m.counts[task.StatusNotStarted],
		m.counts[task.StatusInProgress],
		m.counts[task.StatusBlocked],
		m.counts[task.StatusCompleted],
	))

	if m.filter != nil {
		b.WriteString(filterStyle.Render(fmt.Sprintf("Filter: %s (0 to clear)", *m.filter)) + "\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
	} else {
		for _, t := range m.tasks {
			b.WriteString(formatTask(t) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("File: "+m.path) + "\n\n")
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by NOT_STARTED\n")
	b.WriteString("  2            Filter by IN_PROGRESS\n")
	b.WriteString("  3            Filter by BLOCKED\n")
	b.WriteString("  4            Filter by COMPLETED\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(dimStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

func formatTask(t *task.Task) string {
	icon := " "
	switch t.Status {
	case task.StatusNotStarted:
		icon = " "
	case task.StatusInProgress:
		icon = ">"
	case task.StatusBlocked:
		icon = "!"
	case task.StatusCompleted:
		icon = "x"
	}
	line := fmt.Sprintf("  %s [%s] %s", icon, t.Priority, t.Title)
	if t.DueDate != nil {
		line += dimStyle.Render(fmt.Sprintf("  due %s", t.DueDate.Format("2006-01-02 15:04")))
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
