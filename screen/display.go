package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/aguxez/mealfinder/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	imageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

const bodyIndent = 2

// RenderMeal draws a meal as a heading, its image URI and the instructions
// wrapped to width. A width below one disables wrapping.
func RenderMeal(meal models.Meal, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(meal.Name))
	b.WriteString("\n\n")
	b.WriteString(imageStyle.Render("Image: " + meal.Thumbnail))
	b.WriteString("\n\n")

	wrapAt := width - bodyIndent
	if width < 1 || wrapAt < 1 {
		wrapAt = 0
	}
	wrapped := wordwrap.String(meal.Instructions, wrapAt)
	b.WriteString(indent.String(wrapped, bodyIndent))

	return b.String()
}
