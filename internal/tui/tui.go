// Package tui renders an interactive expedition in the terminal. The game
// engine runs on its own goroutine and talks to the UI through messages: it
// pushes journal lines as they happen and blocks on a channel whenever it
// needs a decision from the player.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/expedition/internal/game"
	"github.com/appengine-ltd/expedition/internal/parser"
)

type logMsg string

type choiceRequestMsg struct {
	prompt  string
	options []game.Choice
	resp    chan string
}

type runDoneMsg struct {
	outcome game.RunOutcome
	err     error
}

// teaSink forwards journal lines into the bubbletea event loop.
type teaSink struct {
	send func(tea.Msg)
}

func (s *teaSink) Append(line string) {
	s.send(logMsg(line))
}

// teaProvider satisfies game.DecisionProvider by handing the question to the
// UI and blocking the engine goroutine until the player answers. Once quit is
// closed every pending and future Choose resolves to the first option, so an
// abandoned engine can run itself to completion instead of blocking forever.
type teaProvider struct {
	send func(tea.Msg)
	quit chan struct{}
}

func (p *teaProvider) Choose(prompt string, options []game.Choice) string {
	resp := make(chan string)
	p.send(choiceRequestMsg{prompt: prompt, options: options, resp: resp})
	select {
	case value := <-resp:
		return value
	case <-p.quit:
		return options[0].Value
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	optionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type model struct {
	viewport viewport.Model
	input    textinput.Model
	ready    bool

	lines   []string
	pending *choiceRequestMsg
	done    bool
	outcome game.RunOutcome
	err     error
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "type a number or a choice"
	ti.CharLimit = 120
	ti.Focus()
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.pending != nil {
				// Unblock the engine so its goroutine can exit.
				m.pending.resp <- m.pending.options[0].Value
				m.pending = nil
			}
			return m, tea.Quit
		case tea.KeyEnter:
			if m.done {
				return m, tea.Quit
			}
			if m.pending != nil {
				m.resolveInput()
			}
			return m, nil
		}

	case logMsg:
		m.appendLine(string(msg))
		return m, nil

	case choiceRequestMsg:
		m.pending = &msg
		m.appendLine("")
		m.appendLine(promptStyle.Render(msg.prompt))
		for i, opt := range msg.options {
			m.appendLine(optionStyle.Render(fmt.Sprintf("  %d. %s", i+1, opt.Label)))
		}
		return m, nil

	case runDoneMsg:
		m.done = true
		m.outcome = msg.outcome
		m.err = msg.err
		if msg.err != nil {
			m.appendLine(errStyle.Render("error: " + msg.err.Error()))
		}
		m.appendLine("")
		m.appendLine(faintStyle.Render("Press enter to leave."))
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// resolveInput matches whatever the player typed against the pending options
// and either answers the engine or asks them to try again.
func (m *model) resolveInput() {
	raw := m.input.Value()
	m.input.Reset()

	labels := make([]string, len(m.pending.options))
	for i, opt := range m.pending.options {
		labels[i] = opt.Label
	}

	result := parser.MatchChoice(raw, labels)
	if result.Clarify != nil {
		m.appendLine(faintStyle.Render("> " + raw))
		m.appendLine(errStyle.Render(result.Clarify.Prompt))
		for _, idx := range result.Clarify.Candidates {
			m.appendLine(optionStyle.Render(fmt.Sprintf("  %d. %s", idx+1, labels[idx])))
		}
		return
	}

	chosen := m.pending.options[result.Index]
	m.appendLine(faintStyle.Render("> " + chosen.Label))
	m.pending.resp <- chosen.Value
	m.pending = nil
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshContent()
}

func (m *model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "loading expedition..."
	}
	header := titleStyle.Render("Expedition") + "\n"
	footer := "\n" + m.input.View() + "\n" + faintStyle.Render("enter to confirm · esc to abandon")
	if m.done {
		footer = "\n" + faintStyle.Render(fmt.Sprintf("Expedition over: %s. Press enter to leave.", m.outcome))
	}
	return header + m.viewport.View() + footer
}

// Run drives an interactive expedition and optionally writes the run report
// when it finishes.
func Run(cfg game.RunConfig, reportPath string) error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())

	type finished struct {
		run     *game.Run
		outcome game.RunOutcome
	}
	done := make(chan finished, 1)
	quit := make(chan struct{})
	go func() {
		sink := &teaSink{send: p.Send}
		provider := &teaProvider{send: p.Send, quit: quit}

		run, err := game.NewRun(cfg, provider, sink)
		if err != nil {
			p.Send(runDoneMsg{err: err})
			return
		}
		outcome := run.Play()
		done <- finished{run: run, outcome: outcome}
		p.Send(runDoneMsg{outcome: outcome})
	}()

	finalModel, err := p.Run()
	// Releases the engine goroutine if the player abandoned mid-decision.
	close(quit)
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	// Only report completed expeditions; an abandoned one has no outcome.
	if m, ok := finalModel.(model); ok && m.done && m.err == nil {
		f := <-done
		if reportPath != "" {
			if err := game.WriteReport(reportPath, f.run.Report(f.outcome)); err != nil {
				return err
			}
		}
	}
	return nil
}
