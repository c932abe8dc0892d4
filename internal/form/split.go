package form

import (
	"math"
	"strconv"
	"strings"
)

// Payer is who paid the bill.
type Payer int

const (
	PayerUser Payer = iota
	PayerFriend
)

// String returns the payer's option value.
func (p Payer) String() string {
	if p == PayerFriend {
		return "friend"
	}
	return "user"
}

// Other returns the other payer.
func (p Payer) Other() Payer {
	if p == PayerFriend {
		return PayerUser
	}
	return PayerFriend
}

// Split is the split-bill draft. An empty field counts as zero, and zero
// counts as unset.
type Split struct {
	Payer Payer

	bill        float64
	expense     float64
	billText    string
	expenseText string
}

// Bill returns the bill value.
func (s *Split) Bill() float64 { return s.bill }

// Expense returns the user's expense.
func (s *Split) Expense() float64 { return s.expense }

// BillText returns the bill as typed.
func (s *Split) BillText() string { return s.billText }

// ExpenseText returns the user's expense as typed.
func (s *Split) ExpenseText() string { return s.expenseText }

// FriendExpense is the friend's share: bill minus the user's expense.
func (s *Split) FriendExpense() float64 {
	return s.bill - s.expense
}

// SetBill updates the bill. It returns false and keeps the previous value
// when text is not a number.
func (s *Split) SetBill(text string) bool {
	v, ok := parseAmount(text)
	if !ok {
		return false
	}
	s.bill, s.billText = v, text
	return true
}

// SetExpense updates the user's expense. It returns false and keeps the
// previous value when text is not a number or exceeds the current bill.
// A later, lower bill does not re-check the expense.
func (s *Split) SetExpense(text string) bool {
	v, ok := parseAmount(text)
	if !ok || v > s.bill {
		return false
	}
	s.expense, s.expenseText = v, text
	return true
}

// Submit returns the signed delta for the selected friend's balance.
// It returns false when the bill or expense is unset. On success the
// draft is reset.
func (s *Split) Submit() (float64, bool) {
	if s.bill == 0 || s.expense == 0 {
		return 0, false
	}

	delta := -s.expense
	if s.Payer == PayerUser {
		delta = s.FriendExpense()
	}

	s.Reset()
	return delta, true
}

// Reset clears the draft.
func (s *Split) Reset() {
	*s = Split{}
}

func parseAmount(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	switch text {
	case "", ".", "-", "-.":
		// Unset, or a number still being typed
		return 0, true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
