package ingest

import (
	"errors"
	"testing"
)

func TestDecodeLenient_FencedWithTrailingComma(t *testing.T) {
	raw := "Here you go:\n```json\n{\"npcSecrets\":[{\"text\":\"x\",\"tag\":\"none\"}],}\n```"

	c, err := DecodeLenient(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.NPCSecrets) != 1 || c.NPCSecrets[0].Text != "x" {
		t.Errorf("expected one npc candidate 'x', got %+v", c.NPCSecrets)
	}
}

func TestDecodeLenient_SurroundingProse(t *testing.T) {
	raw := `Sure! Based on the chat I found these secrets: {"userSecrets":[{"text":"owes money","tag":"dangerous","knownToNpc":true}]} Let me know if you need more.`

	c, err := DecodeLenient(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.UserSecrets) != 1 {
		t.Fatalf("expected one user candidate, got %d", len(c.UserSecrets))
	}
	if !bool(c.UserSecrets[0].KnownToNpc) {
		t.Error("expected knownToNpc true")
	}
}

func TestDecodeLenient_BracesInsideStrings(t *testing.T) {
	raw := `{"npcSecrets":[{"text":"keeps a {coded} diary","tag":"personal"}]}`

	c, err := DecodeLenient(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.NPCSecrets[0].Text != "keeps a {coded} diary" {
		t.Errorf("unexpected text %q", c.NPCSecrets[0].Text)
	}
}

func TestDecodeLenient_MissingListsAreEmpty(t *testing.T) {
	c, err := DecodeLenient(`{"mutualSecrets":[]}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.NPCSecrets) != 0 || len(c.UserSecrets) != 0 || len(c.MutualSecrets) != 0 {
		t.Errorf("expected all lists empty, got %+v", c)
	}
}

func TestDecodeLenient_NoObject(t *testing.T) {
	if _, err := DecodeLenient("I could not find any secrets, sorry."); !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}
	if _, err := DecodeLenient("{\"npcSecrets\": [ never closed"); !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON for unbalanced braces, got %v", err)
	}
}

func TestFlexBool_ToleratesModelShapes(t *testing.T) {
	c, err := DecodeLenient(`{"npcSecrets":[
		{"text":"a","tag":"none","knownToUser":"true"},
		{"text":"b","tag":"none","knownToUser":1},
		{"text":"c","tag":"none","knownToUser":"nope"}
	]}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bool(c.NPCSecrets[0].KnownToUser) || !bool(c.NPCSecrets[1].KnownToUser) {
		t.Error("expected string/number truthy values coerced to true")
	}
	if bool(c.NPCSecrets[2].KnownToUser) {
		t.Error("expected unrecognized value coerced to false")
	}
}
