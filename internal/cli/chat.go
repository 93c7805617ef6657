package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bensonglobal/meridian/pkg/concierge"
	"github.com/bensonglobal/meridian/pkg/errors"
)

// chatCommand creates the chat command.
func (c *CLI) chatCommand() *cobra.Command {
	var once string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the AI concierge",
		Long: `Talk to the AI concierge in an interactive terminal session.

Without an API key (config concierge.api_key or GEMINI_API_KEY) every reply is
the offline notice.`,
		Example: `  meridian chat
  meridian chat --once "What is TG4?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			bot := newConcierge(ctx, cfg, logger)

			if cmd.Flags().Changed("once") {
				if err := errors.ValidateMessage(once); err != nil {
					return err
				}
				spinner := newSpinnerWithContext(ctx, "Thinking...")
				spinner.Start()
				reply := bot.Reply(ctx, nil, once)
				spinner.Stop()
				_, err := fmt.Fprintln(cmd.OutOrStdout(), reply)
				return err
			}

			_, err = tea.NewProgram(newChatModel(ctx, bot), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&once, "once", "", "send one message, print the reply and exit")
	return cmd
}

// =============================================================================
// chatModel - Interactive concierge session
// =============================================================================

var (
	chatUserStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	chatModelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	chatTextStyle  = lipgloss.NewStyle().Foreground(colorGray)
	chatErrStyle   = lipgloss.NewStyle().Foreground(colorRed)
	chatFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// replyMsg carries the concierge answer back into the update loop.
type replyMsg struct{ text string }

type chatModel struct {
	ctx  context.Context
	bot  *concierge.Concierge
	hist []concierge.Message

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	waiting  bool
	problem  string
	suggest  int
}

func newChatModel(ctx context.Context, bot *concierge.Concierge) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about wealth strategy, TG4, partners..."
	ti.CharLimit = errors.MaxMessageLength
	ti.Prompt = "› "
	ti.Focus()

	return chatModel{
		ctx:   ctx,
		bot:   bot,
		hist:  []concierge.Message{{Role: concierge.RoleSystem, Text: concierge.Greeting}},
		input: ti,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-6, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, height)
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = msg.Width-2, height
		}
		m.input.Width = msg.Width - 4
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			s := concierge.Suggestions()
			m.input.SetValue(s[m.suggest%len(s)])
			m.input.CursorEnd()
			m.suggest++
			return m, nil
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := m.input.Value()
			if err := errors.ValidateMessage(text); err != nil {
				m.problem = errors.UserMessage(err)
				return m, nil
			}
			m.problem = ""
			m.input.Reset()
			m.waiting = true
			history := append([]concierge.Message(nil), m.hist...)
			m.hist = append(m.hist, concierge.Message{Role: concierge.RoleUser, Text: text})
			m.refresh()
			return m, m.ask(history, text)
		}

	case replyMsg:
		m.waiting = false
		m.hist = append(m.hist, concierge.Message{Role: concierge.RoleModel, Text: msg.text})
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ask runs the concierge off the update loop. Reply never fails; problems
// come back as displayable text.
func (m chatModel) ask(history []concierge.Message, text string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{text: m.bot.Reply(m.ctx, history, text)}
	}
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m chatModel) transcript() string {
	wrap := chatTextStyle.Width(max(m.viewport.Width-2, 10))
	var b strings.Builder
	for _, msg := range m.hist {
		who := chatModelStyle.Render("Concierge")
		if msg.Role == concierge.RoleUser {
			who = chatUserStyle.Render("You")
		}
		b.WriteString(who + "\n" + wrap.Render(msg.Text) + "\n\n")
	}
	if m.waiting {
		b.WriteString(StyleDim.Render("Concierge is typing..."))
	}
	return b.String()
}

func (m chatModel) View() string {
	if !m.ready {
		return "Connecting to the concierge..."
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("BENSON GLOBAL · CONCIERGE"))
	if !m.bot.Configured() {
		b.WriteString(StyleWarning.Render("  offline"))
	} else {
		b.WriteString(StyleDim.Render("  " + m.bot.Model()))
	}
	b.WriteString("\n")
	b.WriteString(chatFrameStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.problem != "" {
		b.WriteString(chatErrStyle.Render(m.problem))
	} else {
		b.WriteString(StyleDim.Render("⏎ send  tab suggestion  esc quit"))
	}
	return b.String()
}
