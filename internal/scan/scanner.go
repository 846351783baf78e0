package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rcliao/secrets-tracker/internal/ingest"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/rcliao/secrets-tracker/internal/store"
)

// ErrScanInProgress is returned when a scan is requested for a chat that
// already has one outstanding. The second request is rejected, not queued.
var ErrScanInProgress = errors.New("scan already running for this chat")

// ErrNoGenerator is returned when no generation API is configured.
var ErrNoGenerator = errors.New("no generation API configured")

const systemInstructions = `You maintain a secrets tracker for a roleplay chat.
Read the conversation excerpt and propose secrets it establishes: things one party knows that the other does not.
Respond with a single JSON object and nothing else, in this exact shape:
{"npcSecrets":[{"text":"...","tag":"none|dangerous|personal|kompromat","knownToUser":false}],"userSecrets":[{"text":"...","tag":"none","knownToNpc":false}],"mutualSecrets":[{"text":"...","tag":"none"}]}
Keep each text to one short sentence. Use empty arrays when nothing qualifies.`

// Scanner runs AI-assisted scans and reconciles the proposals into state.
type Scanner struct {
	store store.Store
	gen   Generator

	mu      sync.Mutex
	running map[string]bool
}

// NewScanner creates a scanner. gen may be nil; Scan then fails with
// ErrNoGenerator.
func NewScanner(st store.Store, gen Generator) *Scanner {
	return &Scanner{store: st, gen: gen, running: make(map[string]bool)}
}

// Scan samples the chat's trailing messages, asks the generation API for
// candidate secrets, and reconciles them into the chat state. Nothing is
// committed unless the full response parses; a failed call leaves the
// ledger untouched.
func (s *Scanner) Scan(ctx context.Context, chatID string, depth int) (*ingest.Report, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	s.mu.Lock()
	if s.running[chatID] {
		s.mu.Unlock()
		return nil, ErrScanInProgress
	}
	s.running[chatID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.running, chatID)
		s.mu.Unlock()
	}()

	msgs, err := s.store.RecentMessages(ctx, chatID, depth)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("no messages to scan in chat %s", chatID)
	}

	state, err := s.store.LoadState(ctx, chatID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, systemInstructions, Transcript(msgs))
	if err != nil {
		return nil, fmt.Errorf("scan chat %s: %w", chatID, err)
	}

	candidates, err := ingest.DecodeLenient(raw)
	if err != nil {
		return nil, fmt.Errorf("scan chat %s: %w (raw response: %q)", chatID, err, raw)
	}

	report := ingest.Reconcile(state, s.store, candidates)
	if err := s.store.SaveState(ctx, chatID, state); err != nil {
		return nil, err
	}
	return &report, nil
}

// Transcript renders feed messages as "speaker: text" lines for the model.
func Transcript(msgs []model.Message) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.Speaker + ": " + m.Text
	}
	return strings.Join(lines, "\n")
}
