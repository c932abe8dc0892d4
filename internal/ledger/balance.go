package ledger

// Standing classifies a balance.
type Standing int

const (
	Even Standing = iota
	Owe           // user owes the friend
	Owed          // friend owes the user
)

// Standing returns how the user stands with this friend.
func (f Friend) Standing() Standing {
	return StandingOf(f.Balance)
}

// StandingOf classifies a signed balance.
func StandingOf(balance float64) Standing {
	switch {
	case balance < 0:
		return Owe
	case balance > 0:
		return Owed
	default:
		return Even
	}
}

// Summary totals balances across all friends.
type Summary struct {
	Owed  float64 // what friends owe the user
	Owing float64 // what the user owes friends, as a positive amount
}

// Net is Owed minus Owing.
func (s Summary) Net() float64 {
	return s.Owed - s.Owing
}

// Summarize totals the balances of friends.
func Summarize(friends []Friend) Summary {
	var sum Summary
	for _, f := range friends {
		switch f.Standing() {
		case Owed:
			sum.Owed += f.Balance
		case Owe:
			sum.Owing -= f.Balance
		}
	}
	return sum
}
