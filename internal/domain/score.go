package domain

// PointValue returns the scoring value of a rank: tens, face cards and aces
// are worth 10, everything else 5.
func PointValue(r Rank) int {
	switch r {
	case RankAce, RankTen, RankJack, RankQueen, RankKing:
		return 10
	}
	return 5
}

// PointsOf sums the point values of the given cards.
func PointsOf(cards []Card) int {
	sum := 0
	for _, c := range cards {
		sum += PointValue(c.Rank)
	}
	return sum
}

// ApplyRoundScores settles the finished round and returns the per-player
// score deltas keyed by player id.
//
// The winner gains the point value of every card in every meld they laid.
// Every other player loses max(0, handTotal - cancelledValue): each remaining
// hand card tries to cancel laid tokens of their own melds. A hand card worth
// 10 cancels one laid 10-token if present, otherwise two laid 5-tokens when
// both are available, otherwise nothing; a hand card worth 5 cancels one laid
// 5-token if present.
func ApplyRoundScores(players []*Player, winnerSeat int) map[string]int {
	deltas := make(map[string]int, len(players))

	for seat, p := range players {
		laid := laidCards(p)

		if seat == winnerSeat {
			gain := PointsOf(laid)
			p.Score += gain
			deltas[p.ID] = gain
			continue
		}

		tokens := make([]int, 0, len(laid))
		for _, c := range laid {
			tokens = append(tokens, PointValue(c.Rank))
		}

		for _, c := range p.Hand {
			switch PointValue(c.Rank) {
			case 10:
				if i := indexOfToken(tokens, 10); i >= 0 {
					tokens = removeToken(tokens, i)
					continue
				}
				if countToken(tokens, 5) >= 2 {
					tokens = removeToken(tokens, indexOfToken(tokens, 5))
					tokens = removeToken(tokens, indexOfToken(tokens, 5))
				}
			case 5:
				if i := indexOfToken(tokens, 5); i >= 0 {
					tokens = removeToken(tokens, i)
				}
			}
		}

		remaining := 0
		for _, t := range tokens {
			remaining += t
		}
		cancelled := PointsOf(laid) - remaining

		loss := PointsOf(p.Hand) - cancelled
		if loss < 0 {
			loss = 0
		}
		p.Score -= loss
		deltas[p.ID] = -loss
	}

	return deltas
}

func laidCards(p *Player) []Card {
	var out []Card
	for _, m := range p.Melds {
		out = append(out, m.Cards...)
	}
	return out
}

func indexOfToken(tokens []int, v int) int {
	for i, t := range tokens {
		if t == v {
			return i
		}
	}
	return -1
}

func removeToken(tokens []int, i int) []int {
	return append(tokens[:i], tokens[i+1:]...)
}

func countToken(tokens []int, v int) int {
	n := 0
	for _, t := range tokens {
		if t == v {
			n++
		}
	}
	return n
}
