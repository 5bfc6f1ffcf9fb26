// Package ui renders the scrolling headline ticker: a single marquee
// line advanced on a fixed tick, with pause, a description toggle, and
// click/keyboard opening of stories in the browser.
package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/tickerd/internal/browser"
	"github.com/abelbrown/tickerd/internal/config"
	"github.com/abelbrown/tickerd/internal/feeds"
	"github.com/abelbrown/tickerd/internal/logging"
)

// Screen row the marquee occupies; mouse clicks on this row open stories.
const marqueeRow = 2

// tickMsg drives the marquee. One tick advances the scroll by
// cfg.ScrollStep columns.
type tickMsg time.Time

// marker is satisfied by *memory.Memory. Optional.
type marker interface {
	MarkShown(url string)
}

// Model is the display-loop side of the ticker. It consumes batches from
// the poller without ever blocking on it and owns all scroll state.
type Model struct {
	cfg     *config.Config
	batches <-chan feeds.Batch
	opener  browser.Opener
	memory  marker

	spinner spinner.Model
	strip   *strip

	paused    bool
	showDesc  bool
	haveBatch bool
	cycle     int

	width  int
	height int
}

// New builds the ticker model. memory may be nil.
func New(cfg *config.Config, batches <-chan feeds.Batch, opener browser.Opener, mem marker) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(categoryColor("Default"))

	return Model{
		cfg:     cfg,
		batches: batches,
		opener:  opener,
		memory:  mem,
		spinner: sp,
		strip:   newStrip(nil, cfg.HeadlineGap),
		width:   80,
		height:  24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.ScrollDelay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.adoptPending()
		if !m.paused && m.haveBatch {
			m.strip.advance(m.cfg.ScrollStep)
		}
		m.markVisible()
		return m, m.tick()

	case spinner.TickMsg:
		if m.haveBatch {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		case "d":
			m.showDesc = !m.showDesc
			return m, nil
		case "enter", "o":
			m.open(m.strip.current())
			return m, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == marqueeRow {
			m.open(m.strip.itemAt(msg.X, m.width))
		}
		return m, nil
	}

	return m, nil
}

// adoptPending drains at most one batch from the poller. Never blocks:
// an empty channel means the current batch stays on screen.
func (m *Model) adoptPending() {
	select {
	case batch := <-m.batches:
		m.strip.adopt(batch.Items)
		m.cycle = batch.Cycle
		m.haveBatch = true
		logging.Debug("adopted batch", "cycle", batch.Cycle, "items", len(batch.Items))
	default:
	}
}

// markVisible records headlines entering the viewport in cross-session
// memory.
func (m *Model) markVisible() {
	if m.memory == nil || !m.haveBatch {
		return
	}
	for _, item := range m.strip.unshown(m.width) {
		m.memory.MarkShown(item.URL)
	}
}

// open validates and launches the story URL. Invalid URLs are logged and
// ignored; the ticker never dies on a bad link.
func (m *Model) open(item *feeds.Item) {
	if item == nil {
		return
	}
	if err := browser.Validate(item.URL); err != nil {
		logging.Warn("refusing to open url", "url", item.URL, "error", err)
		return
	}
	if err := m.opener.Open(item.URL); err != nil {
		logging.Error("failed to open browser", "url", item.URL, "error", err)
		return
	}
	logging.Info("opened story", "title", item.Title, "url", item.URL)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if !m.haveBatch {
		b.WriteString(m.spinner.View())
		b.WriteString(dimStyle.Render(" Loading feeds..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.marqueeView())
	b.WriteString("\n")

	if m.showDesc {
		b.WriteString("\n")
		b.WriteString(m.descriptionView())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space pause · d description · enter/click open · q quit"))
	return b.String()
}

func (m Model) headerView() string {
	var parts []string
	parts = append(parts, dimStyle.Render("tickerd"))
	if m.haveBatch {
		parts = append(parts, dimStyle.Render("cycle "+strconv.Itoa(m.cycle)))
	}
	if m.paused {
		parts = append(parts, pauseStyle.Render(pauseIcon+" PAUSED"))
	}
	return strings.Join(parts, "  ")
}

// marqueeView renders the visible strip, coloring each headline by its
// category.
func (m Model) marqueeView() string {
	var b strings.Builder
	for _, sp := range m.strip.visible(m.width) {
		if sp.seg < 0 {
			b.WriteString(sp.text)
			continue
		}
		style := lipgloss.NewStyle().Foreground(categoryColor(m.strip.segs[sp.seg].item.Category))
		b.WriteString(style.Render(sp.text))
	}
	return b.String()
}

func (m Model) descriptionView() string {
	item := m.strip.current()
	if item == nil {
		return ""
	}
	desc := cleanSummary(item.Summary)
	if desc == "" {
		desc = dimStyle.Render("(no description)")
		return desc
	}
	return descStyle.Render(truncate(desc, m.width))
}
