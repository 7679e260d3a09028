package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem/internal/deck"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/runner"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	boardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Bold(true)
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	loseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderHand formats a finished hand for the terminal
func renderHand(h *runner.HandSummary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Hand #%d", h.HandNumber)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  blinds %d/%d  button %d", h.SmallBlind, h.BigBlind, h.Button)))
	b.WriteString("\n")

	if len(h.Board) > 0 {
		b.WriteString("Board: " + boardStyle.Render(deck.FormatCards(h.Board)) + "\n")
	}

	for _, line := range h.Lines() {
		b.WriteString(mutedStyle.Render("  "+line) + "\n")
	}

	for _, s := range h.Seats {
		if s.StartChips == 0 {
			continue
		}
		line := fmt.Sprintf("%-12s %6d -> %6d", s.Name, s.StartChips, s.EndChips)
		if h.Result != nil {
			if desc, ok := h.Result.Hands[s.ID]; ok {
				line += "  " + desc
			}
		}
		switch {
		case s.Net() > 0:
			b.WriteString(winStyle.Render(fmt.Sprintf("%s  (+%d)", line, s.Net())))
		case s.Net() < 0:
			b.WriteString(loseStyle.Render(fmt.Sprintf("%s  (%d)", line, s.Net())))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStandings lists every seat by chip count
func renderStandings(e *game.Engine, played int) string {
	players := e.Players()
	slices.SortStableFunc(players, func(a, b *game.Player) int {
		return b.Chips - a.Chips
	})

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Standings after %d hands", played)))
	b.WriteString("\n")
	for i, p := range players {
		line := fmt.Sprintf("%2d. %-12s %6d", i+1, p.Name, p.Chips)
		if p.Chips == 0 {
			line = mutedStyle.Render(line + "  busted")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
