// Package tui implements the `watch` subcommand's live view of an
// annealing run (§4.14, C17): a bubbletea Model/Update/View loop styled
// with lipgloss, fed by the C19 observability hooks instead of polling the
// driver directly.
//
// Grounded on internal/cli/tui.go's bubbletea model shape (Init/Update/View,
// a lipgloss/table render) and internal/cli/ui.go's color palette.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/floorkit/hbstar/pkg/observability"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
	colorGood = lipgloss.Color("35")
	colorWarn = lipgloss.Color("214")

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleGood  = lipgloss.NewStyle().Foreground(colorGood)
)

// row is one line of the live history table.
type row struct {
	iteration   int
	temperature float64
	cost        float64
	bestCost    float64
	kind        string
	accepted    bool
}

// Model is the bubbletea model driving the `watch` view.
type Model struct {
	events   <-chan tea.Msg
	rows     []row
	maxRows  int
	done     bool
	bestArea int
	timedOut bool
	started  time.Time
}

// iterationMsg and perturbationMsg wrap observability events as
// tea.Msg values so Update can switch on them like any other message.
type iterationMsg observability.IterationEvent
type perturbationMsg observability.PerturbationEvent
type completeMsg struct {
	bestCost float64
	bestArea int
	timedOut bool
}

// hooksBridge implements observability.AnnealHooks by forwarding every
// event onto a channel the bubbletea program reads from.
type hooksBridge struct {
	ch chan tea.Msg
}

// NewHooksBridge returns an AnnealHooks implementation and the channel of
// tea.Msg values it feeds; pass the channel to New.
func NewHooksBridge(buffer int) (observability.AnnealHooks, <-chan tea.Msg) {
	ch := make(chan tea.Msg, buffer)
	return &hooksBridge{ch: ch}, ch
}

func (h *hooksBridge) OnIteration(ev observability.IterationEvent) {
	h.send(iterationMsg(ev))
}

func (h *hooksBridge) OnPerturbation(ev observability.PerturbationEvent) {
	h.send(perturbationMsg(ev))
}

func (h *hooksBridge) OnRunComplete(bestCost float64, bestArea int, timedOut bool) {
	h.send(completeMsg{bestCost: bestCost, bestArea: bestArea, timedOut: timedOut})
}

func (h *hooksBridge) send(msg tea.Msg) {
	select {
	case h.ch <- msg:
	default:
		// Drop the message rather than block the annealing goroutine; the
		// table only shows the most recent rows anyway.
	}
}

// New returns a watch-view Model that reads from events until it's closed
// or a completeMsg arrives.
func New(events <-chan tea.Msg) Model {
	return Model{events: events, maxRows: 12, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent
}

func (m Model) waitForEvent() tea.Msg {
	msg, ok := <-m.events
	if !ok {
		return completeMsg{}
	}
	return msg
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case iterationMsg:
		m.rows = append(m.rows, row{
			iteration: msg.Iteration, temperature: msg.Temperature,
			cost: msg.Cost, bestCost: msg.BestCost,
		})
		if len(m.rows) > m.maxRows {
			m.rows = m.rows[len(m.rows)-m.maxRows:]
		}
		return m, m.waitForEvent
	case perturbationMsg:
		if n := len(m.rows); n > 0 {
			m.rows[n-1].kind = msg.Kind
			m.rows[n-1].accepted = msg.Accepted
		}
		return m, m.waitForEvent
	case completeMsg:
		m.done = true
		m.bestArea = msg.bestArea
		m.timedOut = msg.timedOut
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Annealing a floorplan"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("elapsed %s — q to quit", time.Since(m.started).Round(time.Second))))
	b.WriteString("\n\n")

	if len(m.rows) > 0 {
		rows := make([][]string, len(m.rows))
		for i, r := range m.rows {
			accept := "-"
			if r.kind != "" {
				accept = "rejected"
				if r.accepted {
					accept = "accepted"
				}
			}
			rows[i] = []string{
				fmt.Sprintf("%d", r.iteration),
				fmt.Sprintf("%.2f", r.temperature),
				fmt.Sprintf("%.2f", r.cost),
				fmt.Sprintf("%.2f", r.bestCost),
				r.kind,
				accept,
			}
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("iter", "temp", "cost", "best", "move", "outcome").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorDim)
			})
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}

	if m.done {
		status := styleGood.Render(fmt.Sprintf("done — best area %d", m.bestArea))
		if m.timedOut {
			status = lipgloss.NewStyle().Foreground(colorWarn).Render(fmt.Sprintf("timed out — best area %d", m.bestArea))
		}
		b.WriteString(status)
		b.WriteString("\n")
	}

	return b.String()
}
