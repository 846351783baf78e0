package prompt

import (
	"strings"
	"testing"

	"github.com/rcliao/secrets-tracker/internal/model"
)

func TestCompile_Deterministic(t *testing.T) {
	st := model.NewState()
	st.NPCSecrets = []model.Secret{
		{ID: "a", Text: "has a gambling debt", Tag: model.TagDangerous},
		{ID: "b", Text: "saw the murder", Tag: model.TagKompromat, KnownToUser: true},
	}
	st.UserSecrets = []model.Secret{
		{ID: "c", Text: "carries a fake passport", Tag: model.TagPersonal, KnownToNpc: true},
	}

	first := Compile(st, Options{RevealInstruction: true})
	second := Compile(st, Options{RevealInstruction: true})
	if first != second {
		t.Fatal("expected byte-identical output for unchanged state")
	}
}

func TestCompile_TotalsLine(t *testing.T) {
	st := model.NewState()
	st.NPCSecrets = []model.Secret{
		{ID: "a", Text: "has a gambling debt", Tag: model.TagDangerous},
	}

	block := Compile(st, Options{})
	if !strings.Contains(block, "- Total Secrets: [1 hidden / 0 revealed]") {
		t.Errorf("expected totals line for 1 hidden / 0 revealed, got:\n%s", block)
	}
}

func TestCompile_EmptyListsUsePlaceholder(t *testing.T) {
	block := Compile(model.NewState(), Options{})
	if strings.Count(block, "[none]") != 3 {
		t.Errorf("expected all three lists rendered as [none], got:\n%s", block)
	}
	if !strings.Contains(block, "- Leverage Balance: [Равный]") {
		t.Errorf("expected equal balance for empty state, got:\n%s", block)
	}
}

func TestCompile_LeverageBalance(t *testing.T) {
	st := model.NewState()
	// NPC holds a kompromat-weight secret about the user; the user only
	// knows a personal one.
	st.UserSecrets = []model.Secret{
		{ID: "u", Text: "embezzled funds", Tag: model.TagKompromat, KnownToNpc: true},
	}
	st.NPCSecrets = []model.Secret{
		{ID: "n", Text: "lonely at heart", Tag: model.TagPersonal, KnownToUser: true},
	}

	block := Compile(st, Options{})
	if !strings.Contains(block, "- Leverage Balance: [NPC]") {
		t.Errorf("expected NPC balance, got:\n%s", block)
	}

	// Flip the weights the other way.
	st.UserSecrets[0].Tag = model.TagPersonal
	st.NPCSecrets[0].Tag = model.TagDangerous
	block = Compile(st, Options{})
	if !strings.Contains(block, "- Leverage Balance: [{{user}}]") {
		t.Errorf("expected user balance, got:\n%s", block)
	}
}

func TestCompile_ListLinesCarryIcons(t *testing.T) {
	st := model.NewState()
	st.MutualSecrets = []model.Secret{
		{ID: "m", Text: "buried the evidence together", Tag: model.TagDangerous},
	}

	block := Compile(st, Options{})
	if !strings.Contains(block, "- buried the evidence together 💣") {
		t.Errorf("expected list line with tag icon, got:\n%s", block)
	}
}

func TestCompile_RevealInstructionToggle(t *testing.T) {
	st := model.NewState()
	with := Compile(st, Options{RevealInstruction: true})
	without := Compile(st, Options{})

	if !strings.Contains(with, "[REVEAL:") {
		t.Error("expected reveal instruction when enabled")
	}
	if strings.Contains(without, "[REVEAL:") {
		t.Error("expected no reveal instruction when disabled")
	}
}

func TestCompile_HiddenSecretsStayOut(t *testing.T) {
	st := model.NewState()
	st.NPCSecrets = []model.Secret{
		{ID: "a", Text: "poisoned the old king", Tag: model.TagDangerous},
	}

	block := Compile(st, Options{})
	if strings.Contains(block, "poisoned the old king") {
		t.Error("hidden NPC secrets must not leak into the compiled block")
	}
}
