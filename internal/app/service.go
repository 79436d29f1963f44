package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mrhamzaboudrifa-crypto/Cousins-Rummy-Room/internal/domain"
)

var (
	ErrNoRound       = errors.New("no round in progress")
	ErrUnknownPlayer = errors.New("player not seated at this table")
	ErrBadSeatCount  = errors.New("a practice table seats 2 to 4 players")
)

// Options tune the turn clock.
type Options struct {
	TurnDuration  time.Duration
	FirstWarning  time.Duration
	SecondWarning time.Duration
}

// DefaultOptions returns the standard 60 second turn with warnings at 30 and
// 15 seconds remaining.
func DefaultOptions() Options {
	return Options{
		TurnDuration:  60 * time.Second,
		FirstWarning:  30 * time.Second,
		SecondWarning: 15 * time.Second,
	}
}

// Service contains the practice-round use-cases. It is the only mutator of
// table state: every player or bot action is a call into it, and the timeout
// path reuses the same methods, so there is no divergent code path. All
// randomness flows through the injected rng for reproducible rounds.
type Service struct {
	rng  *rand.Rand
	opts Options
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand, opts Options) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.TurnDuration <= 0 {
		opts = DefaultOptions()
	}
	return &Service{rng: rng, opts: opts}
}

// NewTable creates a table for the given seats in order. The first dealer is
// drawn at random; every round end rotates it one seat left.
func (s *Service) NewTable(seats []Seat) (*Table, error) {
	if len(seats) < domain.MinSeats || len(seats) > domain.MaxSeats {
		return nil, ErrBadSeatCount
	}
	players := make([]*domain.Player, len(seats))
	for i, seat := range seats {
		players[i] = &domain.Player{ID: seat.ID, Name: seat.Name, IsBot: seat.IsBot}
	}
	return &Table{
		Players:    players,
		DealerSeat: s.rng.Intn(len(players)),
	}, nil
}

// StartRound deals a fresh round and arms the first turn clock.
func (s *Service) StartRound(t *Table, now time.Time) []Event {
	t.Round = domain.NewRound(t.Players, t.DealerSeat, s.rng)
	s.restartClock(t, now)
	t.markChanged()

	events := make([]Event, 0, len(t.Players)+2)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			DealerSeat:    t.Round.DealerSeat,
			FirstTurnSeat: t.Round.TurnSeat,
			DeckCount:     len(t.Round.Piles.Draw),
		},
	})
	for _, p := range t.Players {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand},
			Recipients: []string{p.ID},
		})
	}
	events = append(events, s.turnStartedEvent(t, now))
	return events
}

// ExitRound tears the round down without applying any scores.
func (s *Service) ExitRound(t *Table) {
	t.Clock.Stop()
	t.Round = nil
	t.markChanged()
}

// DrawFromDeck acquires the top of the draw pile, reshuffling the unwanted
// pile back in when the deck is exhausted.
func (s *Service) DrawFromDeck(t *Table, playerID string, now time.Time) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase != domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}

	c, reshuffled, err := t.Round.Piles.DrawTop(s.rng)
	if err != nil {
		return nil, err
	}
	p.Hand = append([]domain.Card{c}, p.Hand...)
	t.Round.Phase = domain.PhaseMeld
	t.markChanged()

	var events []Event
	if reshuffled {
		events = append(events, Event{
			Kind:    EventDeckReshuffled,
			Payload: DeckReshuffledPayload{DeckCount: len(t.Round.Piles.Draw)},
		})
	}
	events = append(events,
		Event{
			Kind:    EventCardDrawn,
			Payload: CardDrawnPayload{Seat: t.Round.TurnSeat, DeckCount: len(t.Round.Piles.Draw)},
		},
		Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand},
			Recipients: []string{p.ID},
		},
	)
	return events, nil
}

// TakeDiscardTop acquires exactly the top unwanted card. It is rejected with
// MustTakeAll while the player is inspecting a buried card.
func (s *Service) TakeDiscardTop(t *Table, playerID string, now time.Time) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase != domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}

	c, err := t.Round.Piles.TakeTop()
	if err != nil {
		return nil, err
	}
	p.Hand = append([]domain.Card{c}, p.Hand...)
	t.Round.Phase = domain.PhaseMeld
	t.markChanged()

	return []Event{{
		Kind:    EventDiscardTaken,
		Payload: DiscardTakenPayload{Seat: t.Round.TurnSeat, Card: c},
	}}, nil
}

// TakeDiscardAll transfers the whole unwanted pile to the acting hand. This
// is the only way to acquire a buried card.
func (s *Service) TakeDiscardAll(t *Table, playerID string, now time.Time) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase != domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}

	cards, err := t.Round.Piles.TakeAll()
	if err != nil {
		return nil, err
	}
	p.Hand = append(append([]domain.Card{}, cards...), p.Hand...)
	t.Round.Phase = domain.PhaseMeld
	t.markChanged()

	return []Event{{
		Kind:    EventPileTaken,
		Payload: PileTakenPayload{Seat: t.Round.TurnSeat, Cards: cards},
	}}, nil
}

// PeekDiscard inspects the unwanted pile at the given depth from the top
// without transferring ownership.
func (s *Service) PeekDiscard(t *Table, playerID string, depth int) ([]Event, error) {
	_, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}

	c, err := t.Round.Piles.Peek(depth)
	if err != nil {
		return nil, err
	}
	t.markChanged()

	return []Event{{
		Kind:       EventDiscardPeeked,
		Payload:    DiscardPeekedPayload{Seat: t.Round.TurnSeat, Depth: depth, Card: c},
		Recipients: []string{playerID},
	}}, nil
}

// LayMeld moves the selected cards from the acting hand into a new meld. The
// first successful lay of the round unlocks add-to-meld for that player until
// the round ends.
func (s *Service) LayMeld(t *Table, playerID string, cardIDs []string) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase == domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}

	cards, err := domain.CardsByID(p.Hand, cardIDs)
	if err != nil {
		return nil, err
	}
	meld, err := domain.ValidateMeld(cards)
	if err != nil {
		return nil, err
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	p.Melds = append(p.Melds, meld)
	unlocked := !p.HasLaidMeldThisRound
	p.HasLaidMeldThisRound = true
	t.markChanged()

	return []Event{{
		Kind: EventMeldLaid,
		Payload: MeldLaidPayload{
			Seat:      t.Round.TurnSeat,
			MeldIndex: len(p.Melds) - 1,
			Meld:      meld,
			Unlocked:  unlocked,
		},
	}}, nil
}

// AddToMeld extends an existing meld (any seat's) with cards from the acting
// hand. Locked until the acting player has laid a meld this round.
func (s *Service) AddToMeld(t *Table, playerID string, ownerSeat, meldIndex int, cardIDs []string) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase == domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}
	if !p.HasLaidMeldThisRound {
		return nil, domain.ErrAddLocked
	}
	if ownerSeat < 0 || ownerSeat >= len(t.Round.Players) {
		return nil, domain.ErrUnknownMeld
	}
	owner := t.Round.Players[ownerSeat]
	if meldIndex < 0 || meldIndex >= len(owner.Melds) {
		return nil, domain.ErrUnknownMeld
	}

	cards, err := domain.CardsByID(p.Hand, cardIDs)
	if err != nil {
		return nil, err
	}
	extended, err := domain.CanExtend(owner.Melds[meldIndex], cards)
	if err != nil {
		return nil, err
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	owner.Melds[meldIndex] = extended
	t.markChanged()

	return []Event{{
		Kind: EventMeldExtended,
		Payload: MeldExtendedPayload{
			OwnerSeat: ownerSeat,
			MeldIndex: meldIndex,
			Meld:      extended,
			BySeat:    t.Round.TurnSeat,
		},
	}}, nil
}

// Discard pushes exactly one card onto the unwanted pile and ends the turn —
// or the round, when it empties the acting hand.
func (s *Service) Discard(t *Table, playerID, cardID string, now time.Time) ([]Event, error) {
	p, err := s.actingPlayer(t, playerID)
	if err != nil {
		return nil, err
	}
	if t.Round.Phase == domain.PhaseDraw {
		return nil, domain.ErrInvalidPhase
	}

	cards, err := domain.CardsByID(p.Hand, []string{cardID})
	if err != nil {
		return nil, err
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	return s.completeDiscard(t, t.Round.TurnSeat, cards[0], now), nil
}

// Tick advances the turn clock. It fires the one-shot warnings and, at zero,
// the automatic move, all through the normal action paths.
func (s *Service) Tick(t *Table, now time.Time) []Event {
	if t.Round == nil || !t.Clock.Running {
		return nil
	}

	var events []Event
	remaining := t.Clock.Remaining(now)
	seat := t.Round.TurnSeat

	if remaining <= s.opts.FirstWarning && !t.Clock.warnedFirst {
		t.Clock.warnedFirst = true
		events = append(events, Event{
			Kind:    EventTurnWarning,
			Payload: TurnWarningPayload{Seat: seat, SecondsLeft: t.Clock.SecondsLeft(now)},
		})
		t.markChanged()
	}
	if remaining <= s.opts.SecondWarning && !t.Clock.warnedSecond {
		t.Clock.warnedSecond = true
		events = append(events, Event{
			Kind:    EventTurnWarning,
			Payload: TurnWarningPayload{Seat: seat, SecondsLeft: t.Clock.SecondsLeft(now)},
		})
		t.markChanged()
	}
	if remaining <= 0 {
		events = append(events, s.timeoutAutoMove(t, now)...)
	}
	return events
}

// timeoutAutoMove performs the forced move for an expired turn: a single deck
// draw if the player never acquired, then a uniformly random discard, ending
// the turn through the normal discard path.
func (s *Service) timeoutAutoMove(t *Table, now time.Time) []Event {
	t.Clock.Stop()
	seat := t.Round.TurnSeat
	p := t.Round.CurrentPlayer()

	events := []Event{{Kind: EventTurnTimedOut, Payload: TurnTimedOutPayload{Seat: seat}}}

	if t.Round.Phase == domain.PhaseDraw {
		if drawn, err := s.DrawFromDeck(t, p.ID, now); err == nil {
			events = append(events, drawn...)
		}
		// ErrEmptyDeck with an unrecoverable pile: nothing to draw, the
		// forced discard below still ends the turn.
		t.Round.Phase = domain.PhaseMeld
	}

	if len(p.Hand) == 0 {
		// A hand emptied by melds alone cannot end the round; there is no
		// card to discard, so the turn simply passes.
		t.Round.AdvanceTurn()
		s.restartClock(t, now)
		t.markChanged()
		return append(events, s.turnStartedEvent(t, now))
	}

	c := p.Hand[s.rng.Intn(len(p.Hand))]
	p.Hand = domain.RemoveCards(p.Hand, []domain.Card{c})
	return append(events, s.completeDiscard(t, seat, c, now)...)
}

// completeDiscard is the single turn-ending path shared by player, bot and
// timeout discards.
func (s *Service) completeDiscard(t *Table, seat int, c domain.Card, now time.Time) []Event {
	t.Round.Piles.DiscardCard(c)
	t.markChanged()

	events := []Event{{
		Kind:    EventCardDiscarded,
		Payload: CardDiscardedPayload{Seat: seat, Card: c},
	}}

	winner := t.Round.Players[seat]
	if len(winner.Hand) == 0 {
		t.Clock.Stop()
		deltas := domain.ApplyRoundScores(t.Round.Players, seat)
		scores := make(map[string]int, len(t.Players))
		for _, p := range t.Players {
			scores[p.ID] = p.Score
		}
		events = append(events, Event{
			Kind: EventRoundWon,
			Payload: RoundWonPayload{
				WinnerSeat: seat,
				WinnerID:   winner.ID,
				WinnerName: winner.Name,
				Deltas:     deltas,
				Scores:     scores,
			},
		})

		// Deal the next round immediately, rotating the dealer one seat.
		t.DealerSeat = (t.DealerSeat + 1) % len(t.Players)
		return append(events, s.StartRound(t, now)...)
	}

	t.Round.AdvanceTurn()
	s.restartClock(t, now)
	return append(events, s.turnStartedEvent(t, now))
}

// actingPlayer resolves the caller and rejects anyone but the turn holder.
func (s *Service) actingPlayer(t *Table, playerID string) (*domain.Player, error) {
	if t.Round == nil {
		return nil, ErrNoRound
	}
	seat := t.Round.SeatOf(playerID)
	if seat < 0 {
		return nil, ErrUnknownPlayer
	}
	if seat != t.Round.TurnSeat {
		return nil, domain.ErrNotYourTurn
	}
	return t.Round.Players[seat], nil
}

// restartClock is the only place a clock is armed: stop first, then start,
// so exactly one countdown exists per table.
func (s *Service) restartClock(t *Table, now time.Time) {
	t.Clock.Stop()
	t.Clock.Start(now, s.opts.TurnDuration)
}

func (s *Service) turnStartedEvent(t *Table, now time.Time) Event {
	return Event{
		Kind: EventTurnStarted,
		Payload: TurnStartedPayload{
			Seat:        t.Round.TurnSeat,
			SecondsLeft: t.Clock.SecondsLeft(now),
		},
	}
}
