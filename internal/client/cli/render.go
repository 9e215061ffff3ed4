package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// renderer styles transcript and listing lines. Styles are bound to the
// output writer, so a non-terminal writer gets plain text.
type renderer struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	muted     lipgloss.Style
	failed    lipgloss.Style
	selected  lipgloss.Style
	notice    lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		user:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		assistant: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("244")),
		failed:    r.NewStyle().Foreground(lipgloss.Color("203")),
		selected:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		notice:    r.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
	}
}

func (r *renderer) message(m models.Message) string {
	var b strings.Builder

	if m.Role == models.RoleAssistant {
		b.WriteString(r.assistant.Render("assistant:"))
	} else {
		b.WriteString(r.user.Render("you:"))
	}
	b.WriteString(" ")
	b.WriteString(m.Content)

	switch m.Delivery {
	case models.DeliveryPending:
		b.WriteString(" " + r.muted.Render("(sending)"))
	case models.DeliveryFailed:
		b.WriteString(" " + r.failed.Render("(failed)"))
	}

	for _, o := range m.Options {
		b.WriteString("\n  " + r.muted.Render("- "+o.Label))
	}
	return b.String()
}

func (r *renderer) chat(c models.Chat, selected bool) string {
	line := fmt.Sprintf("%s  %s  %s", c.ID, c.Title, r.muted.Render(c.UpdatedAt.Local().Format("2006-01-02 15:04")))
	if selected {
		return r.selected.Render("*") + " " + line
	}
	return "  " + line
}

func (r *renderer) info(s string) string {
	return r.notice.Render(s)
}

func (r *renderer) err(err error) string {
	return r.failed.Render("error: " + err.Error())
}
