package nakama

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/ports"
)

// notificationCodeRoundResult is the Nakama notification code for round
// results. Codes above 100 are reserved for this module.
const notificationCodeRoundResult = 101

// NakamaNotifierAdapter implements ports.NotifierPort using Nakama's
// notification system.
type NakamaNotifierAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaNotifierAdapter creates a new notifier adapter.
func NewNakamaNotifierAdapter(nk runtime.NakamaModule) *NakamaNotifierAdapter {
	return &NakamaNotifierAdapter{
		nk: nk,
	}
}

// NotifyRoundResult delivers the round outcome as a persistent notification,
// so the result survives a dropped realtime socket.
func (a *NakamaNotifierAdapter) NotifyRoundResult(ctx context.Context, userID string, result ports.RoundResult) error {
	content := map[string]interface{}{
		"winner_name": result.WinnerName,
		"deltas":      result.Deltas,
		"scores":      result.Scores,
	}
	subject := fmt.Sprintf("%s won the round", result.WinnerName)

	if err := a.nk.NotificationSend(ctx, userID, subject, content, notificationCodeRoundResult, "", true); err != nil {
		return fmt.Errorf("failed to send round result notification: %w", err)
	}
	return nil
}
