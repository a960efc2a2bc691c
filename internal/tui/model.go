package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thushan/llmsource/internal/app/setup"
	"github.com/thushan/llmsource/internal/core/constants"
	"github.com/thushan/llmsource/internal/core/domain"
)

const hostURLCharLimit = 256

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

type storeEventMsg domain.StoreEvent

type fetchDoneMsg struct {
	result setup.FetchResult
}

// Model renders one setup panel: the host URL field, the Models button and
// the source's models as they land in the store.
type Model struct {
	ctx     context.Context
	panel   *setup.Panel
	events  <-chan domain.StoreEvent
	title   string
	models  []*domain.LLM
	keys    keyMap
	styles  styles
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	focus   focusArea
}

// NewModel wires a panel to a model. events may be nil, the model list is
// then only refreshed after fetches the model starts itself.
func NewModel(ctx context.Context, panel *setup.Panel, title string, events <-chan domain.StoreEvent, themeName string) Model {
	st := newStyles(themeName)

	input := textinput.New()
	input.Placeholder = constants.PlaceholderHostLocalAI
	input.CharLimit = hostURLCharLimit
	input.Width = 48
	input.SetValue(panel.HostURL())
	input.CursorEnd()
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(st.Spinner),
	)

	return Model{
		ctx:     ctx,
		panel:   panel,
		events:  events,
		title:   title,
		models:  panel.Models(),
		keys:    defaultKeyMap(),
		styles:  st,
		help:    help.New(),
		input:   input,
		spinner: spin,
		focus:   focusInput,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.listen()}
	if task := m.panel.Mount(); task != nil {
		cmds = append(cmds, m.spinner.Tick, waitTask(task))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case storeEventMsg:
		m.handleStoreEvent(domain.StoreEvent(msg))
		return m, m.listen()

	case fetchDoneMsg:
		m.models = m.panel.Models()
		return m, nil

	case spinner.TickMsg:
		if !m.panel.IsFetching() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.panel.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusInput {
			m.focus = focusButton
			m.input.Blur()
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Fetch):
		return m, m.fetch()

	case m.focus == focusButton && key.Matches(msg, m.keys.Clear):
		m.panel.ClearModels(m.ctx)
		m.models = m.panel.Models()
		return m, nil
	}

	if m.focus != focusInput {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		// every keystroke goes straight to the store
		_ = m.panel.SetHostURL(m.ctx, value)
	}
	return m, cmd
}

func (m *Model) handleStoreEvent(ev domain.StoreEvent) {
	if ev.SourceID != m.panel.SourceID() {
		return
	}

	switch ev.Type {
	case domain.EventModelsAdded, domain.EventModelsRemoved:
		m.models = m.panel.Models()
	case domain.EventSetupReloaded:
		if hostURL := m.panel.HostURL(); hostURL != m.input.Value() {
			m.input.SetValue(hostURL)
			m.input.CursorEnd()
		}
	}
}

// fetch is the Models button, it does nothing while disabled
func (m Model) fetch() tea.Cmd {
	if !m.panel.CanFetch() {
		return nil
	}
	task, err := m.panel.Refetch()
	if err != nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, waitTask(task))
}

func (m Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

func waitTask(task *setup.Task) tea.Cmd {
	return func() tea.Msg {
		<-task.Done()
		return fetchDoneMsg{result: task.Result()}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Host URL"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.input.Value() != "" && !m.panel.IsValid() {
		b.WriteString(m.styles.Hint.Render("Enter an http:// or https:// address"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.buttonView())
	if m.panel.IsFetching() {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
		b.WriteString(" fetching")
	}
	b.WriteString("\n\n")

	b.WriteString(m.modelsView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.Frame.Render(b.String())
}

func (m Model) buttonView() string {
	const label = "Models"
	switch {
	case !m.panel.CanFetch():
		return m.styles.ButtonDisabled.Render(label)
	case m.focus == focusButton:
		return m.styles.ButtonFocused.Render(label)
	default:
		return m.styles.Button.Render(label)
	}
}

func (m Model) modelsView() string {
	if len(m.models) == 0 {
		return m.styles.ModelID.Render("No models yet") + "\n"
	}

	var b strings.Builder
	for _, llm := range m.models {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.Model.Render(llm.Label),
			m.styles.ModelID.Render(llm.ID),
		))
	}
	return b.String()
}
