package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/rcliao/secrets-tracker/internal/model"
)

// seqIDs hands out deterministic ids for tests.
type seqIDs int

func (s *seqIDs) NewID() string {
	*s++
	return fmt.Sprintf("id-%d", *s)
}

func TestAdd_ValidatesAndNormalizes(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)

	if _, err := Add(st, ids, model.NPCSecrets, "   ", "none", false); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(st.NPCSecrets) != 0 {
		t.Fatal("state must be unchanged after a failed add")
	}

	s, err := Add(st, ids, model.NPCSecrets, "  has a secret twin  ", "Dangerous!!", false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Text != "has a secret twin" {
		t.Errorf("expected trimmed text, got %q", s.Text)
	}
	if s.Tag != model.TagDangerous {
		t.Errorf("expected normalized tag dangerous, got %q", s.Tag)
	}
	if s.ID == "" {
		t.Error("expected a fresh id")
	}
}

func TestAdd_PrependsNewest(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)

	Add(st, ids, model.UserSecrets, "first", "none", false)
	second, _ := Add(st, ids, model.UserSecrets, "second", "none", true)

	if st.UserSecrets[0].ID != second.ID {
		t.Errorf("expected newest secret first, got %q", st.UserSecrets[0].Text)
	}
	if !st.UserSecrets[0].KnownToNpc {
		t.Error("expected knownToNpc carried from the add")
	}
}

func TestAddThenRemove_RoundTrip(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)
	Add(st, ids, model.NPCSecrets, "stays", "none", false)
	before := append([]model.Secret(nil), st.NPCSecrets...)

	s, _ := Add(st, ids, model.NPCSecrets, "transient", "personal", true)
	Remove(st, model.NPCSecrets, s.ID)

	if !reflect.DeepEqual(st.NPCSecrets, before) {
		t.Errorf("expected prior contents restored, got %+v", st.NPCSecrets)
	}
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)
	Add(st, ids, model.MutualSecrets, "shared past", "none", false)

	Remove(st, model.MutualSecrets, "nope")
	if len(st.MutualSecrets) != 1 {
		t.Errorf("expected untouched list, got %d entries", len(st.MutualSecrets))
	}
}

func TestSetKnown(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)
	s, _ := Add(st, ids, model.NPCSecrets, "hidden debt", "none", false)

	if err := SetKnown(st, model.NPCSecrets, s.ID, true); err != nil {
		t.Fatalf("set known: %v", err)
	}
	if !st.NPCSecrets[0].KnownToUser {
		t.Error("expected knownToUser set")
	}

	// Unknown id is a silent no-op.
	if err := SetKnown(st, model.NPCSecrets, "missing", true); err != nil {
		t.Errorf("expected no-op for unknown id, got %v", err)
	}

	if err := SetKnown(st, model.MutualSecrets, s.ID, true); !errors.Is(err, ErrNoVisibilityFlag) {
		t.Errorf("expected ErrNoVisibilityFlag for mutual, got %v", err)
	}
}

func TestCount_AsymmetricTotals(t *testing.T) {
	st := model.NewState()
	ids := new(seqIDs)
	Add(st, ids, model.NPCSecrets, "has a gambling debt", "dangerous", false)

	c := Count(st)
	if c.Hidden != 1 || c.Revealed != 0 {
		t.Fatalf("expected 1 hidden / 0 revealed, got %d / %d", c.Hidden, c.Revealed)
	}

	// User secrets count as revealed even while unknown to the NPC.
	Add(st, ids, model.UserSecrets, "afraid of the dark", "personal", false)
	Add(st, ids, model.MutualSecrets, "met before the war", "none", false)
	SetKnown(st, model.NPCSecrets, st.NPCSecrets[0].ID, true)

	c = Count(st)
	if c.Hidden != 0 || c.Revealed != 3 {
		t.Errorf("expected 0 hidden / 3 revealed, got %d / %d", c.Hidden, c.Revealed)
	}
}
