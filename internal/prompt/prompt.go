// Package prompt compiles a chat's secret state into the injected tracker
// block. The output is deterministic: the host replaces the previous
// injection by tag, so identical state must compile to identical bytes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/model"
)

// InjectionTag is the fixed key the tracker block is injected under.
const InjectionTag = "secrets_tracker"

// Options toggles optional sections of the compiled block.
type Options struct {
	// RevealInstruction appends the instruction asking the model to emit
	// [REVEAL: ...] markers. Enabled when auto-detection is on.
	RevealInstruction bool
}

// leverageScore sums tag weights: kompromat and dangerous secrets matter
// more than personal ones.
func leverageScore(items []model.Secret) int {
	sum := 0
	for _, s := range items {
		sum += s.Tag.Weight()
	}
	return sum
}

func formatList(items []model.Secret) string {
	if len(items) == 0 {
		return "[none]"
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "- " + strings.TrimSpace(s.Text+" "+s.Tag.Icon())
	}
	return strings.Join(lines, "\n")
}

// Compile renders the tracker block for injection. {{user}} and {{char}}
// macros are left intact for the host to substitute.
func Compile(st *model.State, opts Options) string {
	var npcKnownToUser, userKnownToNpc []model.Secret
	for _, s := range st.NPCSecrets {
		if s.KnownToUser {
			npcKnownToUser = append(npcKnownToUser, s)
		}
	}
	for _, s := range st.UserSecrets {
		if s.KnownToNpc {
			userKnownToNpc = append(userKnownToNpc, s)
		}
	}

	counts := ledger.Count(st)

	npcLeverage := leverageScore(userKnownToNpc)
	userLeverage := leverageScore(npcKnownToUser)
	balance := "Равный"
	if npcLeverage > userLeverage {
		balance = "NPC"
	}
	if userLeverage > npcLeverage {
		balance = "{{user}}"
	}

	var b strings.Builder
	b.WriteString("[SECRETS & REVELATIONS TRACKER]\n\n")
	b.WriteString("Track secrets, hidden information, and discoveries between {{user}} and NPCs. Update when secrets are revealed, discovered, or used.\n\n")
	b.WriteString("<SECRET CATEGORIES>\n")
	b.WriteString("- 🔓 Раскрытые (Known to {{user}})\n")
	b.WriteString("- 🔒 Скрытые (Hidden from {{user}})\n")
	b.WriteString("- 💣 Опасные (Could cause major consequences)\n")
	b.WriteString("- 💔 Личные (Emotional/vulnerable secrets)\n")
	b.WriteString("- 🗡️ Компромат (Can be used as leverage)\n")
	b.WriteString("</SECRET CATEGORIES>\n\n")
	b.WriteString("<TRACKING>\n")
	fmt.Fprintf(&b, "- Total Secrets: [%d hidden / %d revealed]\n", counts.Hidden, counts.Revealed)
	b.WriteString("- {{user}}'s secrets known to NPC:\n")
	b.WriteString(formatList(userKnownToNpc))
	b.WriteString("\n- NPC's secrets known to {{user}}:\n")
	b.WriteString(formatList(npcKnownToUser))
	b.WriteString("\n- Mutual secrets (shared):\n")
	b.WriteString(formatList(st.MutualSecrets))
	fmt.Fprintf(&b, "\n- Leverage Balance: [%s]\n", balance)
	b.WriteString("</TRACKING>\n")

	if opts.RevealInstruction {
		b.WriteString("\n<INSTRUCTIONS>\n")
		b.WriteString("When a hidden secret becomes known to the other side, mark it in your reply as [REVEAL: short description of the secret].\n")
		b.WriteString("</INSTRUCTIONS>\n")
	}

	return b.String()
}
