package domain

import "strings"

// Side is the direction of a single execution.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// ParseSide accepts "buy" / "sell" in any case.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, true
	case "sell":
		return SideSell, true
	}
	return "", false
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Direction is the direction of a round trip, decided by which side opened it.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// DirectionFor returns the trade direction implied by the opening side.
func DirectionFor(opening Side) Direction {
	if opening == SideBuy {
		return DirectionLong
	}
	return DirectionShort
}
