// Package render turns leaderboard records into table row descriptors.
//
// Everything here is a pure function of its input. The descriptors are printed
// by the HTML templates, serialized for the row endpoints and written into the
// Excel export, so formatting decisions live in exactly one place.
package render

import (
	"strconv"
	"strings"

	"github.com/abrezinsky/mastersboard/internal/models"
)

// RowKind identifies which kind of table row a descriptor represents
type RowKind string

const (
	KindPlayer     RowKind = "player"
	KindTeam       RowKind = "team"
	KindTeamPlayer RowKind = "team-player"
)

// Cell classes for the individual leaderboard
const (
	ClassFinished   = "text-success"
	ClassPlaying    = "text-primary fw-bold"
	ClassNotStarted = "text-muted"
)

// Cell classes for the team leaderboard
const (
	ClassNegative = "negative-score"
	ClassPositive = "positive-score"
	ClassEven     = "even-score"
)

// Row classes for the team leaderboard
const (
	RowClassTeam   = "team-row"
	RowClassPlayer = "player-row"
	RowClassBest   = "best-score"
)

// Placeholder is the text of a round that has not started
const Placeholder = "-"

// TeamColumns is the number of columns in the team table
const TeamColumns = 10

// Cell is one table cell
type Cell struct {
	Text    string `json:"text"`
	Class   string `json:"class,omitempty"`
	ColSpan int    `json:"colspan,omitempty"`
}

// Row is one table row. Key is the player or team name the row belongs to.
type Row struct {
	Kind    RowKind  `json:"kind"`
	Key     string   `json:"key"`
	Classes []string `json:"classes,omitempty"`
	Cells   []Cell   `json:"cells"`
}

// HasClass reports whether the row carries the given class
func (r Row) HasClass(class string) bool {
	for _, c := range r.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ClassName returns the row classes as a class attribute value
func (r Row) ClassName() string {
	return strings.Join(r.Classes, " ")
}

// Texts returns the text of every cell in order
func (r Row) Texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text
	}
	return texts
}

// CellClasses returns the class of every cell in order
func (r Row) CellClasses() []string {
	classes := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		classes[i] = c.Class
	}
	return classes
}

// ToPar formats a score relative to par: "-2", "E", "+3"
func ToPar(v int) string {
	switch {
	case v == 0:
		return "E"
	case v > 0:
		return "+" + strconv.Itoa(v)
	default:
		return strconv.Itoa(v)
	}
}

// OptionalToPar formats a nullable to-par value; nil is blank
func OptionalToPar(v *int) string {
	if v == nil {
		return ""
	}
	return ToPar(*v)
}

// RoundCell renders one round of the individual leaderboard
func RoundCell(r models.RoundScore) Cell {
	switch r.Status {
	case models.RoundFinished:
		return Cell{Text: strconv.Itoa(r.Score), Class: ClassFinished}
	case models.RoundPlaying:
		return Cell{Text: ToPar(r.RelativeToPar), Class: ClassPlaying}
	default:
		return Cell{Text: Placeholder, Class: ClassNotStarted}
	}
}

// PlayerRow renders one player of the individual leaderboard
func PlayerRow(p models.PlayerRow) Row {
	cells := make([]Cell, 0, 3+len(models.RoundKeys))
	cells = append(cells,
		Cell{Text: strconv.Itoa(p.Position.Int())},
		Cell{Text: p.Name},
		Cell{Text: ToPar(p.TotalScore.Int())},
	)
	for _, key := range models.RoundKeys {
		cells = append(cells, RoundCell(p.Round(key)))
	}
	return Row{Kind: KindPlayer, Key: p.Name, Cells: cells}
}

// Scores renders the individual leaderboard
func Scores(players []models.PlayerRow) []Row {
	rows := make([]Row, 0, len(players))
	for _, p := range players {
		rows = append(rows, PlayerRow(p))
	}
	return rows
}
