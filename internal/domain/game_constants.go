package domain

const (
	// BaseHandSize is dealt to every seat; the seat left of the dealer gets
	// one extra card along with the first turn.
	BaseHandSize = 7

	// MinSeats and MaxSeats bound a practice table (one human plus 1-3 bots).
	MinSeats = 2
	MaxSeats = 4
)
