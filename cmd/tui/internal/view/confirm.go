package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

type ConfirmState int

const (
	ConfirmIdle ConfirmState = iota
	ConfirmConfirming
	ConfirmCommitted
	ConfirmCancelled
)

func (s ConfirmState) String() string {
	switch s {
	case ConfirmConfirming:
		return "confirming"
	case ConfirmCommitted:
		return "committed"
	case ConfirmCancelled:
		return "cancelled"
	}

	return "idle"
}

// Confirmation is an inline yes/no prompt guarding an action. It never blocks:
// the owning view forwards keys to it while Active and runs whatever command
// it returns.
type Confirmation struct {
	state  ConfirmState
	prompt string
	action tea.Cmd
}

// Ask starts confirming action. A prompt already awaiting an answer is kept.
func (c Confirmation) Ask(prompt string, action tea.Cmd) Confirmation {
	if c.state == ConfirmConfirming {
		return c
	}

	return Confirmation{state: ConfirmConfirming, prompt: prompt, action: action}
}

func (c Confirmation) State() ConfirmState { return c.state }

func (c Confirmation) Active() bool { return c.state == ConfirmConfirming }

// Update resolves the prompt: y or enter commits and returns the action,
// n or esc cancels. Other keys are ignored.
func (c Confirmation) Update(msg tea.Msg) (Confirmation, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || c.state != ConfirmConfirming {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		c.state = ConfirmCommitted
		action := c.action
		c.action = nil

		return c, action
	case "n", "N", "esc":
		c.state = ConfirmCancelled
		c.action = nil

		return c, nil
	}

	return c, nil
}

func (c Confirmation) View() string {
	if c.state != ConfirmConfirming {
		return ""
	}

	return warnStyle.Render(c.prompt) + faintStyle.Render("  [y/enter] confirm  [n/esc] cancel")
}
