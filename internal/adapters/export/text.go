package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/okian/squads/internal/domain/model"
)

var (
	teamStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	memberStyle = lipgloss.NewStyle().PaddingLeft(2)
	scoreStyle  = lipgloss.NewStyle().Faint(true)
)

// Text renders teams for a terminal.
func Text(w io.Writer, teams []model.Team) error {
	var b strings.Builder
	for i, t := range teams {
		if i > 0 {
			b.WriteByte('\n')
		}
		header := fmt.Sprintf("%s (%d, avg %.1f)", t.Name, t.Size(), t.AverageSkillLevel())
		b.WriteString(teamStyle.Render(header))
		b.WriteByte('\n')
		for _, m := range t.Members {
			line := m.Surname + " " + scoreStyle.Render(fmt.Sprintf("[%.1f]", m.AverageSkillLevel))
			b.WriteString(memberStyle.Render(line))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
