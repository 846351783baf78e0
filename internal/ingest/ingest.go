// Package ingest merges AI-proposed secret candidates into a chat's state,
// skipping duplicates of what the ledger already tracks.
package ingest

import (
	"strings"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/match"
	"github.com/rcliao/secrets-tracker/internal/model"
)

// Candidate is one proposed secret from a scan response.
type Candidate struct {
	Text        string   `json:"text"`
	Tag         string   `json:"tag"`
	KnownToUser flexBool `json:"knownToUser"`
	KnownToNpc  flexBool `json:"knownToNpc"`
}

// Candidates is the JSON shape a scan asks the model to produce. Missing
// lists decode as empty.
type Candidates struct {
	NPCSecrets    []Candidate `json:"npcSecrets"`
	UserSecrets   []Candidate `json:"userSecrets"`
	MutualSecrets []Candidate `json:"mutualSecrets"`
}

// Report counts what a reconcile added per collection.
type Report struct {
	AddedNPC    int `json:"added_npc"`
	AddedUser   int `json:"added_user"`
	AddedMutual int `json:"added_mutual"`
}

// Total returns the number of secrets added across all collections.
func (r Report) Total() int {
	return r.AddedNPC + r.AddedUser + r.AddedMutual
}

// Reconcile merges candidates into the state. Every accepted text joins the
// duplicate pool, so later candidates in the same batch dedupe against
// earlier ones too. Blank candidates are skipped, never fatal. The caller
// persists the state once after the whole batch.
func Reconcile(st *model.State, ids ledger.IDSource, c *Candidates) Report {
	pool := st.AllTexts()
	var report Report

	add := func(coll model.Collection, cand Candidate, known bool) bool {
		text := strings.TrimSpace(cand.Text)
		if text == "" || match.IsDuplicate(text, pool) {
			return false
		}
		if _, err := ledger.Add(st, ids, coll, text, cand.Tag, known); err != nil {
			return false
		}
		pool = append(pool, text)
		return true
	}

	for _, cand := range c.NPCSecrets {
		if add(model.NPCSecrets, cand, bool(cand.KnownToUser)) {
			report.AddedNPC++
		}
	}
	for _, cand := range c.UserSecrets {
		if add(model.UserSecrets, cand, bool(cand.KnownToNpc)) {
			report.AddedUser++
		}
	}
	for _, cand := range c.MutualSecrets {
		if add(model.MutualSecrets, cand, false) {
			report.AddedMutual++
		}
	}

	return report
}
