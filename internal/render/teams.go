package render

import (
	"sort"
	"strconv"

	"github.com/abrezinsky/mastersboard/internal/models"
)

// BestCount is how many player totals count towards a team's score
const BestCount = 4

// ScoreClass classifies a nullable to-par value. Nil has no class, which is
// different from zero.
func ScoreClass(v *int) string {
	switch {
	case v == nil:
		return ""
	case *v < 0:
		return ClassNegative
	case *v > 0:
		return ClassPositive
	default:
		return ClassEven
	}
}

// BestScores returns the set of the BestCount lowest totals among a team's
// players. Players without a total are ignored. Membership is by value, so
// every player tied at the cutoff is highlighted.
func BestScores(players []models.TeamPlayer) map[int]bool {
	totals := make([]int, 0, len(players))
	for _, p := range players {
		if p.Total != nil {
			totals = append(totals, *p.Total)
		}
	}
	sort.Ints(totals)
	if len(totals) > BestCount {
		totals = totals[:BestCount]
	}

	best := make(map[int]bool, len(totals))
	for _, t := range totals {
		best[t] = true
	}
	return best
}

// IsBest reports whether a player's total is in the best set
func IsBest(best map[int]bool, p models.TeamPlayer) bool {
	return p.Total != nil && best[*p.Total]
}

func scoredCell(v *int) Cell {
	return Cell{Text: OptionalToPar(v), Class: ScoreClass(v)}
}

// TeamRow renders the summary row of a team
func TeamRow(t models.TeamRow) Row {
	rank := ""
	if t.Rank != nil {
		rank = strconv.Itoa(*t.Rank)
	}
	return Row{
		Kind:    KindTeam,
		Key:     t.Team,
		Classes: []string{RowClassTeam},
		Cells: []Cell{
			{Text: rank},
			{Text: t.Team},
			scoredCell(t.Score),
			{ColSpan: TeamColumns - 3},
		},
	}
}

// TeamPlayerRow renders one player under a team row
func TeamPlayerRow(p models.TeamPlayer, best bool) Row {
	classes := []string{RowClassPlayer}
	if best {
		classes = append(classes, RowClassBest)
	}

	cells := make([]Cell, 0, TeamColumns)
	cells = append(cells, Cell{}, Cell{}, Cell{})
	cells = append(cells, Cell{Text: p.Name}, Cell{Text: p.Tier.String()})
	for _, r := range p.Rounds {
		cells = append(cells, scoredCell(r))
	}
	cells = append(cells, scoredCell(p.Total))

	return Row{Kind: KindTeamPlayer, Key: p.Name, Classes: classes, Cells: cells}
}

// Teams renders the team leaderboard: each team row is followed by its players
// in order. Best scores are recomputed per team.
func Teams(teams []models.TeamRow) []Row {
	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, TeamRow(t))
		best := BestScores(t.Players)
		for _, p := range t.Players {
			rows = append(rows, TeamPlayerRow(p, IsBest(best, p)))
		}
	}
	return rows
}
