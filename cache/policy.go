package cache

import (
	"time"

	"github.com/poiesic/scout/core"
)

// Policy maps query intents to entry lifetimes. The table is consulted on
// every store; call sites never hard-code a TTL.
type Policy map[core.Intent]time.Duration

// fallbackTTL applies when a policy has no entry for an intent and no
// general entry to fall back to.
const fallbackTTL = time.Hour

// DefaultPolicy returns the standard lifetime table. Volatile intents get
// short lifetimes, slow-moving ones keep entries around for a day.
func DefaultPolicy() Policy {
	return Policy{
		core.IntentNews:      15 * time.Minute,
		core.IntentFinance:   30 * time.Minute,
		core.IntentGeneral:   time.Hour,
		core.IntentShopping:  time.Hour,
		core.IntentLocal:     time.Hour,
		core.IntentTechnical: 24 * time.Hour,
		core.IntentAcademic:  24 * time.Hour,
	}
}

// TTL returns the lifetime for entries of the given intent. Unknown intents
// fall back to the general lifetime.
func (p Policy) TTL(intent core.Intent) time.Duration {
	if ttl, ok := p[intent]; ok && ttl > 0 {
		return ttl
	}
	if ttl, ok := p[core.IntentGeneral]; ok && ttl > 0 {
		return ttl
	}
	return fallbackTTL
}
