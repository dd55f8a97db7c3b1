package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amescasi/studyloop/internal/models"
)

// TimerResult is what the timer hands back when the session ends,
// whether it ran to completion or was stopped early.
type TimerResult struct {
	ActualMinutes float64
	Breaks        []models.Break
	Completed     bool
}

type tickMsg time.Time

type KeyMap struct {
	Break  key.Binding
	Resume key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Break: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "take a break"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "end session"),
		),
	}
}

// TimerModel is a countdown study timer. Study time only accrues
// while not on a break; breaks are recorded with their own
// timestamps.
type TimerModel struct {
	topic    string
	planned  time.Duration
	elapsed  time.Duration
	onBreak  bool
	breakAt  time.Time
	breaks   []models.Break
	keys     KeyMap
	progress progress.Model
	done     bool
	quitting bool
}

func NewTimer(topic string, plannedMinutes int) TimerModel {
	return TimerModel{
		topic:    topic,
		planned:  time.Duration(plannedMinutes) * time.Minute,
		keys:     DefaultKeyMap(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m TimerModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if !m.onBreak {
			m.elapsed += time.Second
			if m.elapsed >= m.planned {
				m.done = true
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Break):
			if !m.onBreak {
				m.onBreak = true
				m.breakAt = time.Now()
			}
		case key.Matches(msg, m.keys.Resume):
			if m.onBreak {
				now := time.Now()
				m.breaks = append(m.breaks, models.Break{
					StartTime:       m.breakAt.Format(time.RFC3339),
					EndTime:         now.Format(time.RFC3339),
					DurationSeconds: int(now.Sub(m.breakAt).Seconds()),
				})
				m.onBreak = false
			}
		case key.Matches(msg, m.keys.Quit):
			if m.onBreak {
				now := time.Now()
				m.breaks = append(m.breaks, models.Break{
					StartTime:       m.breakAt.Format(time.RFC3339),
					EndTime:         now.Format(time.RFC3339),
					DurationSeconds: int(now.Sub(m.breakAt).Seconds()),
				})
				m.onBreak = false
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) View() string {
	if m.quitting {
		return ""
	}

	remaining := m.planned - m.elapsed
	if remaining < 0 {
		remaining = 0
	}

	var status string
	if m.onBreak {
		breakFor := time.Since(m.breakAt).Round(time.Second)
		status = breakStyle.Render(fmt.Sprintf("On break (%s)  [r] resume  [q] end session", formatClock(breakFor)))
	} else {
		status = helpStyle.Render("[b] take a break  [q] end session")
	}

	fraction := float64(m.elapsed) / float64(m.planned)
	if fraction > 1 {
		fraction = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Studying: "+m.topic),
		"",
		m.progress.ViewAs(fraction),
		"",
		clockStyle.Render(formatClock(remaining)+" remaining"),
		fmt.Sprintf("Breaks so far: %d", len(m.breaks)),
		"",
		status,
	)
}

// Result reports what happened during the run. Only meaningful after
// the program has finished.
func (m TimerModel) Result() TimerResult {
	return TimerResult{
		ActualMinutes: m.elapsed.Minutes(),
		Breaks:        m.breaks,
		Completed:     m.done,
	}
}

func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
