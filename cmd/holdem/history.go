package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem/internal/store"
)

// HistoryCmd reads back what play recorded with --db
type HistoryCmd struct {
	DB      string `name:"db" required:"" type:"existingfile" help:"SQLite database written by play --db"`
	Table   string `default:"main" help:"Table name"`
	Session int64  `help:"Session id to read hands from (0 = latest)"`
	Hand    int    `help:"Print the history of this hand instead of the table summary"`
}

func (c *HistoryCmd) Run() error {
	return c.show(context.Background(), os.Stdout)
}

func (c *HistoryCmd) show(ctx context.Context, out io.Writer) error {
	db, err := store.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.Sessions(ctx, c.Table)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions recorded for table %q in %s", c.Table, c.DB)
	}

	if c.Hand == 0 {
		standings, err := db.Standings(ctx, c.Table)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, renderTableHistory(c.Table, sessions, standings))
		return err
	}

	session := sessions[len(sessions)-1]
	if c.Session != 0 {
		session = nil
		for _, s := range sessions {
			if s.ID == c.Session {
				session = s
			}
		}
		if session == nil {
			return fmt.Errorf("table %q has no session %d", c.Table, c.Session)
		}
	}

	lines, err := session.History(ctx, c.Hand)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return errors.New("hand has no recorded history")
	}
	_, err = fmt.Fprint(out, renderHandHistory(session, c.Hand, lines))
	return err
}

func renderTableHistory(table string, sessions []*store.Session, standings []store.Standing) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Table " + table))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Sessions"))
	b.WriteString("\n")
	for _, s := range sessions {
		b.WriteString(fmt.Sprintf("%4d  %s  seed %d  %d hands\n", s.ID, s.Name, s.Seed, s.Hands))
	}

	b.WriteString(headerStyle.Render("Standings"))
	b.WriteString("\n")
	for i, st := range standings {
		line := fmt.Sprintf("%2d. %-12s %4d hands %4d won", i+1, st.Name, st.Hands, st.Won)
		switch {
		case st.Net > 0:
			line = winStyle.Render(fmt.Sprintf("%s  +%d", line, st.Net))
		case st.Net < 0:
			line = loseStyle.Render(fmt.Sprintf("%s  %d", line, st.Net))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderHandHistory(session *store.Session, hand int, lines []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Hand #%d", hand)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  session %d (%s)", session.ID, session.Name)))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
