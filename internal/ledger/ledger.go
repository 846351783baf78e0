// Package ledger implements mutations and counts on a chat's secret state.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/match"
	"github.com/rcliao/secrets-tracker/internal/model"
)

// ErrEmptyText is returned when a secret is added with blank text.
var ErrEmptyText = errors.New("secret text is required")

// ErrNoVisibilityFlag is returned when toggling a mutual secret, which has
// no known-to flag by construction.
var ErrNoVisibilityFlag = errors.New("mutual secrets have no visibility flag")

// IDSource produces unique secret ids.
type IDSource interface {
	NewID() string
}

// Add validates and prepends a secret to the named collection.
// The tag is normalized before storage; the returned secret is the stored one.
// The caller is responsible for persisting the state afterwards.
func Add(st *model.State, ids IDSource, c model.Collection, text string, tag string, known bool) (model.Secret, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Secret{}, fmt.Errorf("add secret: %w", ErrEmptyText)
	}

	s := model.Secret{
		ID:   ids.NewID(),
		Text: text,
		Tag:  match.NormalizeTag(tag),
	}
	switch c {
	case model.NPCSecrets:
		s.KnownToUser = known
	case model.UserSecrets:
		s.KnownToNpc = known
	}

	list := st.List(c)
	*list = append([]model.Secret{s}, *list...)
	return s, nil
}

// Remove deletes the first secret with the given id from the collection.
// Unknown ids are a no-op.
func Remove(st *model.State, c model.Collection, id string) {
	list := st.List(c)
	for i, s := range *list {
		if s.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// SetKnown sets the visibility flag of a secret. Unknown ids are a no-op.
// Mutual secrets carry no flag, so toggling one is an error.
func SetKnown(st *model.State, c model.Collection, id string, known bool) error {
	if c == model.MutualSecrets {
		return ErrNoVisibilityFlag
	}
	list := st.List(c)
	for i := range *list {
		if (*list)[i].ID != id {
			continue
		}
		if c == model.NPCSecrets {
			(*list)[i].KnownToUser = known
		} else {
			(*list)[i].KnownToNpc = known
		}
		return nil
	}
	return nil
}

// Counts holds the widget totals for a chat.
//
// User and mutual secrets always count as revealed; only NPC secrets the user
// has not learned yet count as hidden. The asymmetry is inherited from the
// tracker's framing and is deliberate.
type Counts struct {
	Revealed int `json:"revealed"`
	Hidden   int `json:"hidden"`
}

// Count computes the revealed/hidden totals.
func Count(st *model.State) Counts {
	var c Counts
	for _, s := range st.NPCSecrets {
		if s.KnownToUser {
			c.Revealed++
		} else {
			c.Hidden++
		}
	}
	c.Revealed += len(st.UserSecrets) + len(st.MutualSecrets)
	return c
}
