package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/evenup/internal/avatar"
)

type fixedRand int

func (r fixedRand) IntN(int) int { return int(r) }

func testAvatars(size int) *avatar.Generator {
	g := avatar.New(avatar.DefaultTemplate, avatar.DefaultMaxSize)
	g.Rand = fixedRand(size)
	return g
}

func counterIDs() IDSource {
	n := 0
	return func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
}

func TestNewAddFriendCapturesSession(t *testing.T) {
	f := NewAddFriend(counterIDs(), testAvatars(42))

	assert.Equal(t, "id-1", f.ID())
	assert.Equal(t, "https://i.pravatar.cc/42", f.Image)
	assert.Equal(t, f.Image, f.Placeholder())
	assert.Empty(t, f.Name)

	// Editing does not touch the captured id.
	f.Name = "Dana"
	f.Image = "https://example.com/dana.png"
	assert.Equal(t, "id-1", f.ID())
}

func TestAddFriendSubmit(t *testing.T) {
	f := NewAddFriend(counterIDs(), testAvatars(42))
	f.Name = "Dana"

	friend, ok := f.Submit()
	require.True(t, ok)

	assert.Equal(t, "id-1", friend.ID)
	assert.Equal(t, "Dana", friend.Name)
	assert.Equal(t, "https://i.pravatar.cc/42?=id-1", friend.Image)
	assert.Zero(t, friend.Balance)

	// Draft reset to the same placeholder; id is not regenerated.
	assert.Empty(t, f.Name)
	assert.Equal(t, "https://i.pravatar.cc/42", f.Image)
	assert.Equal(t, "id-1", f.ID())
}

func TestAddFriendSubmitRequiresFields(t *testing.T) {
	tests := []struct {
		name  string
		fName string
		image string
	}{
		{"empty name", "", "https://i.pravatar.cc/42"},
		{"empty image", "Dana", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAddFriend(counterIDs(), testAvatars(42))
			f.Name = tt.fName
			f.Image = tt.image

			_, ok := f.Submit()
			assert.False(t, ok)
			assert.Equal(t, tt.fName, f.Name, "draft is kept on a skipped submit")
			assert.Equal(t, tt.image, f.Image)
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSplitFriendExpense(t *testing.T) {
	var s Split
	assert.Zero(t, s.FriendExpense())

	require.True(t, s.SetBill("100"))
	assert.Equal(t, 100.0, s.FriendExpense())

	require.True(t, s.SetExpense("40"))
	assert.Equal(t, 60.0, s.FriendExpense())
}

func TestSplitExpenseClampedOnEdit(t *testing.T) {
	var s Split
	require.True(t, s.SetBill("50"))
	require.True(t, s.SetExpense("30"))

	assert.False(t, s.SetExpense("60"))
	assert.Equal(t, 30.0, s.Expense())
	assert.Equal(t, "30", s.ExpenseText())

	assert.True(t, s.SetExpense("50"), "expense equal to the bill is allowed")
}

func TestSplitExpenseRejectedWithoutBill(t *testing.T) {
	var s Split
	assert.False(t, s.SetExpense("5"))
	assert.True(t, s.SetExpense(""))
}

func TestSplitStaleExpenseSurvivesLowerBill(t *testing.T) {
	var s Split
	require.True(t, s.SetBill("100"))
	require.True(t, s.SetExpense("80"))
	require.True(t, s.SetBill("20"))

	assert.Equal(t, 80.0, s.Expense())
	assert.Equal(t, -60.0, s.FriendExpense())
}

func TestSplitRejectsNonNumeric(t *testing.T) {
	var s Split
	require.True(t, s.SetBill("12"))

	for _, text := range []string{"abc", "1x", "..", "NaN", "Inf"} {
		assert.False(t, s.SetBill(text), text)
	}
	assert.Equal(t, 12.0, s.Bill())
	assert.Equal(t, "12", s.BillText())

	assert.True(t, s.SetBill("12."))
	assert.True(t, s.SetBill(""))
	assert.Zero(t, s.Bill())
}

func TestSplitAcceptsPartialNumbers(t *testing.T) {
	var s Split

	require.True(t, s.SetBill("."))
	assert.Zero(t, s.Bill())
	assert.Equal(t, ".", s.BillText())

	require.True(t, s.SetBill(".5"))
	assert.Equal(t, 0.5, s.Bill())

	require.True(t, s.SetExpense("-"))
	require.True(t, s.SetExpense("-."))
	assert.Zero(t, s.Expense())

	// Still unset, so nothing to submit
	_, ok := s.Submit()
	assert.False(t, ok)
}

func TestSplitSubmit(t *testing.T) {
	tests := []struct {
		name    string
		bill    string
		expense string
		payer   Payer
		delta   float64
	}{
		{"user pays", "100", "40", PayerUser, 60},
		{"friend pays", "50", "10", PayerFriend, -10},
		{"user pays own share only", "30", "30", PayerUser, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Split
			require.True(t, s.SetBill(tt.bill))
			require.True(t, s.SetExpense(tt.expense))
			s.Payer = tt.payer

			delta, ok := s.Submit()
			require.True(t, ok)
			assert.Equal(t, tt.delta, delta)

			assert.Zero(t, s.Bill())
			assert.Zero(t, s.Expense())
			assert.Empty(t, s.BillText())
			assert.Equal(t, PayerUser, s.Payer)
		})
	}
}

func TestSplitSubmitSkipsUnset(t *testing.T) {
	tests := []struct {
		name    string
		bill    string
		expense string
	}{
		{"nothing set", "", ""},
		{"no expense", "50", ""},
		{"zero expense", "50", "0"},
		{"zero bill", "0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Split
			require.True(t, s.SetBill(tt.bill))
			require.True(t, s.SetExpense(tt.expense))
			s.Payer = PayerFriend

			_, ok := s.Submit()
			assert.False(t, ok)
			assert.Equal(t, tt.bill, s.BillText(), "draft is kept on a skipped submit")
			assert.Equal(t, PayerFriend, s.Payer)
		})
	}
}

func TestPayer(t *testing.T) {
	assert.Equal(t, "user", PayerUser.String())
	assert.Equal(t, "friend", PayerFriend.String())
	assert.Equal(t, PayerFriend, PayerUser.Other())
	assert.Equal(t, PayerUser, PayerFriend.Other())
}
