// Package form holds the draft state of the add-friend and split-bill forms.
//
// Drafts are local to one form instance and only become part of the
// ledger when Submit succeeds and the caller dispatches the result.
package form

import (
	"github.com/google/uuid"

	"github.com/henri123lemoine/evenup/internal/avatar"
	"github.com/henri123lemoine/evenup/internal/ledger"
)

// IDSource produces identifiers that do not collide within a session.
type IDSource func() string

// NewID is the default IDSource.
func NewID() string {
	return uuid.NewString()
}

// AddFriend is one add-friend form session. The id and placeholder are
// drawn once when the session starts and kept until it is discarded.
type AddFriend struct {
	Name  string
	Image string

	id          string
	placeholder string
}

// NewAddFriend starts a form session.
func NewAddFriend(ids IDSource, avatars *avatar.Generator) *AddFriend {
	if ids == nil {
		ids = NewID
	}
	placeholder := avatars.Placeholder()
	return &AddFriend{
		Image:       placeholder,
		id:          ids(),
		placeholder: placeholder,
	}
}

// ID returns the identifier captured for this session.
func (f *AddFriend) ID() string {
	return f.id
}

// Placeholder returns the image URL the form was seeded with.
func (f *AddFriend) Placeholder() string {
	return f.placeholder
}

// Submit builds the new friend. It returns false, leaving the draft
// untouched, when the name or image is empty. On success the name is
// cleared and the image reset to the placeholder; the id is kept.
func (f *AddFriend) Submit() (ledger.Friend, bool) {
	if f.Name == "" || f.Image == "" {
		return ledger.Friend{}, false
	}

	friend := ledger.Friend{
		ID:      f.id,
		Name:    f.Name,
		Image:   avatar.WithID(f.Image, f.id),
		Balance: 0,
	}

	f.Name = ""
	f.Image = f.placeholder
	return friend, true
}
