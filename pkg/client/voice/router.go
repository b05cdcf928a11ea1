package voice

import (
	"strings"
	"sync"

	"github.com/cbodonnell/torchlight/pkg/log"
)

// CommandRouter maps spoken phrases to actions.
// Only final hypotheses trigger an action, so partial results repeating the
// same phrase do not fire it more than once.
type CommandRouter struct {
	mu      sync.RWMutex
	actions map[string]func()
}

var _ CommandHandler = &CommandRouter{}

func NewCommandRouter() *CommandRouter {
	return &CommandRouter{
		actions: make(map[string]func()),
	}
}

// Handle registers the action for a phrase. Phrases are matched case-insensitively.
func (r *CommandRouter) Handle(phrase string, action func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[normalizePhrase(phrase)] = action
}

// HandleHypothesis fires the action of the whole phrase if one is registered,
// otherwise the action of the first word that has one.
func (r *CommandRouter) HandleHypothesis(hyp string, final bool) {
	if !final {
		log.Trace("Partial hypothesis: %s", hyp)
		return
	}

	action, ok := r.lookup(hyp)
	if !ok {
		log.Debug("No command for hypothesis: %s", hyp)
		return
	}
	action()
}

func (r *CommandRouter) lookup(hyp string) (func(), bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phrase := normalizePhrase(hyp)
	if action, ok := r.actions[phrase]; ok {
		return action, true
	}
	for _, word := range strings.Fields(phrase) {
		if action, ok := r.actions[word]; ok {
			return action, true
		}
	}
	return nil, false
}

func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToUpper(phrase)), " ")
}
