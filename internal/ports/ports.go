package ports

import "context"

// RoundResult summarizes a finished round for out-of-band delivery.
type RoundResult struct {
	WinnerName string         `json:"winner_name"`
	Deltas     map[string]int `json:"deltas"`
	Scores     map[string]int `json:"scores"`
}

// NotifierPort delivers round results to players outside the match stream,
// so a result still reaches a player whose realtime socket dropped.
type NotifierPort interface {
	NotifyRoundResult(ctx context.Context, userID string, result RoundResult) error
}
