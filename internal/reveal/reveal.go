// Package reveal detects reveal markers in model output and updates the
// chat state accordingly.
//
// A marker looks like "[REVEAL: the gambling debt]" — a keyword from a small
// synonym table, a colon, and a free phrase running to the closing bracket.
package reveal

import (
	"regexp"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/match"
	"github.com/rcliao/secrets-tracker/internal/model"
)

// markerKeywords are the accepted reveal keywords, English and Russian.
// Kept as data so adding a synonym does not touch the matching logic.
var markerKeywords = []string{
	"reveal",
	"revealed",
	"secret revealed",
	"раскрыт",
	"раскрыто",
	"раскрыт секрет",
}

var markerRe = regexp.MustCompile(`(?i)\[\s*(?:` + strings.Join(markerKeywords, "|") + `)\s*:\s*([^\]]+)\]`)

// matchPrefixRunes bounds how much of a stored secret participates in the
// substring check, so a marker phrase still matches when the model
// paraphrases past the opening words.
const matchPrefixRunes = 64

// EventKind says how a marker was resolved.
type EventKind string

const (
	// MatchedExisting means a hidden NPC secret was flipped to known.
	MatchedExisting EventKind = "matched_existing"
	// InsertedNew means the marker named a secret the ledger never tracked,
	// so a new already-known NPC secret was inserted.
	InsertedNew EventKind = "inserted_new"
)

// Event reports one resolved marker.
type Event struct {
	Kind   EventKind    `json:"kind"`
	Phrase string       `json:"phrase"`
	Secret model.Secret `json:"secret"`
}

// Result is the outcome of scanning one message.
type Result struct {
	Changed bool    `json:"changed"`
	Events  []Event `json:"events"`
}

// Detect scans a message for reveal markers and applies them to the state.
// Each phrase is matched against hidden NPC secrets by a two-way substring
// relation on normalized text; the first match wins and is flipped to known.
// Unmatched phrases insert a new, already-known NPC secret. The caller
// checks the auto-detect setting before invoking and persists afterwards.
func Detect(st *model.State, ids ledger.IDSource, message string) Result {
	var res Result
	for _, m := range markerRe.FindAllStringSubmatch(message, -1) {
		phrase := strings.TrimSpace(m[1])
		if phrase == "" {
			continue
		}
		ev, ok := applyPhrase(st, ids, phrase)
		if !ok {
			continue
		}
		res.Events = append(res.Events, ev)
		res.Changed = true
	}
	return res
}

func applyPhrase(st *model.State, ids ledger.IDSource, phrase string) (Event, bool) {
	normPhrase := match.Normalize(phrase)
	if normPhrase == "" {
		return Event{}, false
	}

	for i := range st.NPCSecrets {
		s := st.NPCSecrets[i]
		if s.KnownToUser {
			continue
		}
		normText := truncateRunes(match.Normalize(s.Text), matchPrefixRunes)
		if strings.Contains(normText, normPhrase) || strings.Contains(normPhrase, normText) {
			st.NPCSecrets[i].KnownToUser = true
			return Event{Kind: MatchedExisting, Phrase: phrase, Secret: st.NPCSecrets[i]}, true
		}
	}

	// The model asserted a reveal the ledger never tracked.
	s, err := ledger.Add(st, ids, model.NPCSecrets, phrase, string(model.TagNone), true)
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: InsertedNew, Phrase: phrase, Secret: s}, true
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
