package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"protochain/pkg/lessons"
	"protochain/pkg/vm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	failStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

type lessonItem struct {
	lesson *lessons.Lesson
}

func (i lessonItem) Title() string       { return i.lesson.Title }
func (i lessonItem) Description() string { return i.lesson.Summary }
func (i lessonItem) FilterValue() string { return i.lesson.ID + " " + i.lesson.Title }

type browseKeyMap struct {
	Open   key.Binding
	Back   key.Binding
	Script key.Binding
	Quit   key.Binding
}

var browseKeys = browseKeyMap{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run lesson"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Script: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "output/javascript"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

type browseModel struct {
	list     list.Model
	viewport viewport.Model
	opts     []vm.Option

	current    *lessons.Lesson
	output     string
	runErr     error
	showScript bool

	width    int
	height   int
	quitting bool
}

func newBrowseModel(ls []*lessons.Lesson, opts []vm.Option) browseModel {
	items := make([]list.Item, len(ls))
	for i, l := range ls {
		items[i] = lessonItem{lesson: l}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "protochain lessons"

	return browseModel{
		list:     l,
		viewport: viewport.New(0, 0),
		opts:     opts,
	}
}

func browse(ls []*lessons.Lesson, opts []vm.Option) error {
	_, err := tea.NewProgram(newBrowseModel(ls, opts), tea.WithAltScreen()).Run()
	return err
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, browseKeys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.current == nil {
			if m.list.FilterState() != list.Filtering && key.Matches(msg, browseKeys.Open) {
				if item, ok := m.list.SelectedItem().(lessonItem); ok {
					m.open(item.lesson)
				}
				return m, nil
			}
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, browseKeys.Back):
			m.current = nil
			m.showScript = false
			return m, nil
		case key.Matches(msg, browseKeys.Script):
			m.showScript = !m.showScript
			m.viewport.SetContent(m.content())
			m.viewport.GotoTop()
			return m, nil
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.current == nil {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// open runs l on a fresh model and shows its output.
func (m *browseModel) open(l *lessons.Lesson) {
	m.current = l
	m.showScript = false
	lines, err := l.Output(m.opts...)
	m.output = strings.Join(lines, "\n")
	m.runErr = err
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m browseModel) content() string {
	if m.showScript {
		return m.current.Script()
	}
	if m.runErr != nil {
		return m.output + "\n" + failStyle.Render(m.runErr.Error())
	}
	return m.output
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	if m.current == nil {
		return m.list.View()
	}
	mode := "output"
	if m.showScript {
		mode = "javascript"
	}
	header := titleStyle.Render(m.current.Title) + helpStyle.Render("("+mode+")")
	help := helpStyle.Render("esc back • tab output/javascript • ↑/↓ scroll • ctrl+c quit")
	return header + "\n" + m.viewport.View() + "\n" + help
}
