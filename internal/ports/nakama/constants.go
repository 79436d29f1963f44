package nakama

const (
	// RpcPracticeMatch is the Nakama RPC id clients call to create a solo
	// practice match against bots.
	RpcPracticeMatch = "practice_match"

	// MatchNamePractice is the authoritative match handler name registered
	// with Nakama.
	MatchNamePractice = "rummy_practice"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpDrawCard       int64 = 1
	OpTakeDiscard    int64 = 2
	OpTakeDiscardAll int64 = 3
	OpLayMeld        int64 = 4
	OpAddToMeld      int64 = 5
	OpDiscardCard    int64 = 6
	OpPeekDiscard    int64 = 7
	OpExitRound      int64 = 8

	// Server -> Client events
	OpSnapshot       int64 = 101
	OpRoundStarted   int64 = 102
	OpHandDealt      int64 = 103 // send privately
	OpTurnStarted    int64 = 104
	OpCardDrawn      int64 = 105
	OpDeckReshuffled int64 = 106
	OpDiscardTaken   int64 = 107
	OpPileTaken      int64 = 108
	OpDiscardPeeked  int64 = 109 // send privately
	OpMeldLaid       int64 = 110
	OpMeldExtended   int64 = 111
	OpCardDiscarded  int64 = 112
	OpTurnWarning    int64 = 113
	OpTurnTimedOut   int64 = 114
	OpRoundWon       int64 = 115
	OpRejected       int64 = 116
)
