package core

import "strings"

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const (
	EmptySymbol       = "·"
	DiamondMineSymbol = "◆"
	HealthWellSymbol  = "✚"
	ActiveSymbol      = "*"
	TeamSymbols       = "ABCDEFGH"
)

var teamColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

// Render returns a text picture of the board. Units show as their team
// letter, the unit at active gets a trailing star. When color is false no
// ANSI escapes are written.
func (b *Board) Render(active Coordinate, color bool) string {
	var sb strings.Builder
	sb.Grow((b.N*3+4)*(b.N+3) + 80)

	sb.WriteString("   ")
	for c := 0; c < b.N; c++ {
		sb.WriteString(IntToStringFixedWidth(c, 3))
	}
	sb.WriteString("\n")

	for r := 0; r < b.N; r++ {
		sb.WriteString(IntToStringFixedWidth(r, 3))
		for c := 0; c < b.N; c++ {
			cell := b.Tiles[r][c]
			writeCell(&sb, cell, cell.Coord() == active, color)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(EmptySymbol + "=empty " + DiamondMineSymbol + "=diamond mine " +
		HealthWellSymbol + "=health well A-H=teams " + ActiveSymbol + "=active\n")
	return sb.String()
}

func writeCell(sb *strings.Builder, cell Cell, active, color bool) {
	var tint, glyph string
	switch {
	case cell.IsUnit():
		tint = teamColor(cell.Unit.Team)
		glyph = teamSymbol(cell.Unit.Team)
		if active {
			glyph += ActiveSymbol
		} else {
			glyph += " "
		}
	case cell.IsHealthWell():
		tint, glyph = ColorGreen, " "+HealthWellSymbol
	case cell.IsDiamondMine() && cell.Resource.Owned:
		tint = teamColor(cell.Resource.Owner.Team)
		glyph = teamSymbol(cell.Resource.Owner.Team) + DiamondMineSymbol
	case cell.IsDiamondMine():
		tint, glyph = ColorWhite, " "+DiamondMineSymbol
	default:
		tint, glyph = ColorGray, " "+EmptySymbol
	}

	sb.WriteString(" ")
	if color {
		sb.WriteString(tint)
	}
	sb.WriteString(glyph)
	if color {
		sb.WriteString(ColorReset)
	}
}

func teamSymbol(team int) string {
	if team < 0 {
		return "?"
	}
	return string(TeamSymbols[team%len(TeamSymbols)])
}

func teamColor(team int) string {
	if team < 0 || team >= len(teamColors) {
		return ColorWhite
	}
	return teamColors[team]
}
