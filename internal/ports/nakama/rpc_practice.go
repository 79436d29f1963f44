package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// PracticeMatchRequest is the optional payload clients send when creating a
// practice match.
type PracticeMatchRequest struct {
	BotCount   int    `json:"bot_count"`
	Difficulty string `json:"difficulty"`
}

// PracticeMatchResponse is the payload returned to clients.
type PracticeMatchResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcPracticeMatch, rpcPracticeMatch)
}

func rpcPracticeMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Practice matches are private: always create, never list-and-join.
	var req PracticeMatchRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("rpcPracticeMatch: Ignoring malformed payload: %v", err)
		}
	}

	params := map[string]interface{}{}
	if req.BotCount > 0 {
		params["bot_count"] = req.BotCount
	}
	if req.Difficulty != "" {
		params["difficulty"] = req.Difficulty
	}

	matchID, err := nk.MatchCreate(ctx, MatchNamePractice, params)
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := PracticeMatchResponse{MatchID: matchID}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
