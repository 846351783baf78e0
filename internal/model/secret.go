// Package model defines the core secret-tracker data types.
package model

// Tag classifies a secret. Only the four values below are ever stored.
type Tag string

const (
	TagNone      Tag = "none"
	TagDangerous Tag = "dangerous"
	TagPersonal  Tag = "personal"
	TagKompromat Tag = "kompromat"
)

// ValidTags are the allowed secret tags.
var ValidTags = map[Tag]bool{
	TagNone:      true,
	TagDangerous: true,
	TagPersonal:  true,
	TagKompromat: true,
}

// Icon returns the display glyph for a tag ("" for none).
func (t Tag) Icon() string {
	switch t {
	case TagDangerous:
		return "💣"
	case TagPersonal:
		return "💔"
	case TagKompromat:
		return "🗡️"
	}
	return ""
}

// Weight returns the leverage weight of a tag.
// Dangerous and kompromat count double; personal counts once.
func (t Tag) Weight() int {
	switch t {
	case TagDangerous, TagKompromat:
		return 2
	case TagPersonal:
		return 1
	}
	return 0
}

// Collection identifies one of the three secret lists of a chat.
type Collection int

const (
	NPCSecrets Collection = iota
	UserSecrets
	MutualSecrets
)

// ParseCollection maps a user-facing list name to a Collection.
func ParseCollection(s string) (Collection, bool) {
	switch s {
	case "npc":
		return NPCSecrets, true
	case "user":
		return UserSecrets, true
	case "mutual":
		return MutualSecrets, true
	}
	return 0, false
}

func (c Collection) String() string {
	switch c {
	case NPCSecrets:
		return "npc"
	case UserSecrets:
		return "user"
	}
	return "mutual"
}

// Secret is one ledger entry.
//
// Known carries the collection-specific visibility flag: knownToUser for NPC
// secrets, knownToNpc for user secrets. Mutual secrets have no flag and both
// JSON fields stay absent.
type Secret struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Tag         Tag    `json:"tag"`
	KnownToUser bool   `json:"knownToUser,omitempty"`
	KnownToNpc  bool   `json:"knownToNpc,omitempty"`
}

// Known reports the visibility flag appropriate for the collection.
func (s Secret) Known(c Collection) bool {
	switch c {
	case NPCSecrets:
		return s.KnownToUser
	case UserSecrets:
		return s.KnownToNpc
	}
	return true
}

// DefaultNPCLabel is the host macro substituted with the character name.
const DefaultNPCLabel = "{{char}}"

// State is the per-chat secret ledger, stored as one JSON blob in the host
// metadata store. Lists are most-recently-added-first.
type State struct {
	NPCLabel      string   `json:"npcLabel"`
	NPCSecrets    []Secret `json:"npcSecrets"`
	UserSecrets   []Secret `json:"userSecrets"`
	MutualSecrets []Secret `json:"mutualSecrets"`
}

// NewState returns an empty ledger with the default label.
func NewState() *State {
	return &State{
		NPCLabel:      DefaultNPCLabel,
		NPCSecrets:    []Secret{},
		UserSecrets:   []Secret{},
		MutualSecrets: []Secret{},
	}
}

// Normalize repairs a partially populated state: nil lists become empty and
// a blank label falls back to the default. Import and load both rely on it.
func (st *State) Normalize() {
	if st.NPCLabel == "" {
		st.NPCLabel = DefaultNPCLabel
	}
	if st.NPCSecrets == nil {
		st.NPCSecrets = []Secret{}
	}
	if st.UserSecrets == nil {
		st.UserSecrets = []Secret{}
	}
	if st.MutualSecrets == nil {
		st.MutualSecrets = []Secret{}
	}
}

// List returns a pointer to the named collection's slice.
func (st *State) List(c Collection) *[]Secret {
	switch c {
	case NPCSecrets:
		return &st.NPCSecrets
	case UserSecrets:
		return &st.UserSecrets
	}
	return &st.MutualSecrets
}

// AllTexts collects every secret text across the three collections.
func (st *State) AllTexts() []string {
	texts := make([]string, 0, len(st.NPCSecrets)+len(st.UserSecrets)+len(st.MutualSecrets))
	for _, list := range [][]Secret{st.NPCSecrets, st.UserSecrets, st.MutualSecrets} {
		for _, s := range list {
			texts = append(texts, s.Text)
		}
	}
	return texts
}

// Message is one entry of the host chat feed.
type Message struct {
	ID      string `json:"id"`
	ChatID  string `json:"chat_id"`
	Seq     int    `json:"seq"`
	Speaker string `json:"speaker"`
	IsUser  bool   `json:"is_user"`
	Text    string `json:"text"`
}
