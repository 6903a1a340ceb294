package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

var (
	cellStyle  = lipgloss.NewStyle().Width(3).Align(lipgloss.Center)
	xStyle     = cellStyle.Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	oStyle     = cellStyle.Foreground(lipgloss.Color("#5FAFFF")).Bold(true)
	emptyStyle = cellStyle.Foreground(lipgloss.Color("240"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderBoard draws the grid; empty cells show their index so the player
// knows what to type.
func renderBoard(board entity.Board) string {
	rows := make([]string, 0, 3)
	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			i := row*3 + col
			switch board[i] {
			case entity.PlayerX:
				cells = append(cells, xStyle.Render(string(entity.PlayerX)))
			case entity.PlayerO:
				cells = append(cells, oStyle.Render(string(entity.PlayerO)))
			default:
				cells = append(cells, emptyStyle.Render(strconv.Itoa(i)))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
