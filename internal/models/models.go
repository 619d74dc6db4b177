package models

import (
	"encoding/json"
	"fmt"
)

// RoundKeys lists the per-player round keys in display order
var RoundKeys = [4]string{"round1", "round2", "round3", "round4"}

// RoundStatus is the status reported for a single round
type RoundStatus string

const (
	RoundFinished   RoundStatus = "Finished"
	RoundPlaying    RoundStatus = "Playing"
	RoundNotStarted RoundStatus = "NotStarted"
)

// Known reports whether the status is one the API documents
func (s RoundStatus) Known() bool {
	switch s {
	case RoundFinished, RoundPlaying, RoundNotStarted:
		return true
	}
	return false
}

// RoundScore is one round of a player's tournament. Exactly one shape is
// populated depending on Status: Score for Finished, RelativeToPar for Playing,
// nothing for NotStarted. Unrecognized statuses are kept verbatim so callers
// can report them.
type RoundScore struct {
	Status        RoundStatus `json:"status"`
	Score         int         `json:"score,omitempty"`
	RelativeToPar int         `json:"relative_to_par,omitempty"`
}

// Finished builds a finished round
func Finished(score int) RoundScore {
	return RoundScore{Status: RoundFinished, Score: score}
}

// Playing builds an in-progress round
func Playing(relativeToPar int) RoundScore {
	return RoundScore{Status: RoundPlaying, RelativeToPar: relativeToPar}
}

// NotStarted builds a round that has not begun
func NotStarted() RoundScore {
	return RoundScore{Status: RoundNotStarted}
}

// UnmarshalJSON decodes the tagged round variant and checks that the field
// required by the status is present.
func (r *RoundScore) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status        *string  `json:"status"`
		Score         *FlexInt `json:"score"`
		RelativeToPar *FlexInt `json:"relative_to_par"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Status == nil {
		return fmt.Errorf("round: missing status")
	}

	*r = RoundScore{Status: RoundStatus(*raw.Status)}
	switch r.Status {
	case RoundFinished:
		if raw.Score == nil {
			return fmt.Errorf("round: Finished without score")
		}
		r.Score = raw.Score.Int()
	case RoundPlaying:
		if raw.RelativeToPar == nil {
			return fmt.Errorf("round: Playing without relative_to_par")
		}
		r.RelativeToPar = raw.RelativeToPar.Int()
	}
	return nil
}

// MarshalJSON writes only the field that belongs to the status, so an even
// in-progress round keeps its "relative_to_par": 0.
func (r RoundScore) MarshalJSON() ([]byte, error) {
	switch r.Status {
	case RoundFinished:
		return json.Marshal(struct {
			Status RoundStatus `json:"status"`
			Score  int         `json:"score"`
		}{r.Status, r.Score})
	case RoundPlaying:
		return json.Marshal(struct {
			Status        RoundStatus `json:"status"`
			RelativeToPar int         `json:"relative_to_par"`
		}{r.Status, r.RelativeToPar})
	default:
		return json.Marshal(struct {
			Status RoundStatus `json:"status"`
		}{r.Status})
	}
}

// PlayerRow is one player on the individual leaderboard
type PlayerRow struct {
	Position   FlexInt               `json:"position"`
	Name       string                `json:"name"`
	TotalScore FlexInt               `json:"total_score"`
	Rounds     map[string]RoundScore `json:"rounds"`
}

// Round returns the round for a key, treating a missing key as not started
func (p PlayerRow) Round(key string) RoundScore {
	if r, ok := p.Rounds[key]; ok {
		return r
	}
	return NotStarted()
}

// UnknownStatuses returns the round keys whose status is not documented
func (p PlayerRow) UnknownStatuses() []string {
	var keys []string
	for _, key := range RoundKeys {
		if r, ok := p.Rounds[key]; ok && !r.Status.Known() {
			keys = append(keys, key)
		}
	}
	return keys
}

// TeamRow is one team on the team leaderboard
type TeamRow struct {
	Rank    *int         `json:"rank"`
	Team    string       `json:"team"`
	Score   *int         `json:"score"`
	Players []TeamPlayer `json:"players"`
}

// TeamPlayer is a drafted player inside a team
type TeamPlayer struct {
	Name   string     `json:"name"`
	Tier   FlexString `json:"tier"`
	Rounds [4]*int    `json:"rounds"`
	Total  *int       `json:"total"`
}

// UnmarshalJSON pads rounds to four slots; more than four is rejected.
func (p *TeamPlayer) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string     `json:"name"`
		Tier   FlexString `json:"tier"`
		Rounds []*int     `json:"rounds"`
		Total  *int       `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Rounds) > len(p.Rounds) {
		return fmt.Errorf("player %q: %d rounds, at most %d allowed", raw.Name, len(raw.Rounds), len(p.Rounds))
	}

	*p = TeamPlayer{Name: raw.Name, Tier: raw.Tier, Total: raw.Total}
	copy(p.Rounds[:], raw.Rounds)
	return nil
}

// Envelope is the {success, data|error} wrapper used by every scores API endpoint
type Envelope[T any] struct {
	Success  bool   `json:"success"`
	Data     T      `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// ReportResult is the outcome of a successful report generation
type ReportResult struct {
	Message  string `json:"message,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
