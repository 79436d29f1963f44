package bot

import (
	"encoding/json"
	"math/rand"
	"os"
	"sync"
)

// Identity is one entry from the bot name pool.
type Identity struct {
	Name string `json:"name"`
	Tier Tier   `json:"tier,omitempty"`
}

var defaultIdentities = []Identity{
	{Name: "Alice"}, {Name: "Mike"}, {Name: "John"},
	{Name: "Med"}, {Name: "Lisa"}, {Name: "Zara"},
	{Name: "Omar"}, {Name: "Tara"}, {Name: "Nina"},
}

var (
	identitiesOnce sync.Once
	identityPool   []Identity
)

// LoadIdentities reads the bot name pool from the given file once per process.
// A missing or malformed file falls back to the built-in pool, never an error:
// practice tables must always be able to seat opponents.
func LoadIdentities(path string) []Identity {
	identitiesOnce.Do(func() {
		identityPool = defaultIdentities
		if path == "" {
			return
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return
		}
		var loaded []Identity
		if err := json.Unmarshal(raw, &loaded); err != nil || len(loaded) == 0 {
			return
		}
		identityPool = loaded
	})
	return identityPool
}

// PickIdentities draws n distinct identities from the pool. When the pool is
// smaller than n the pool wraps, which only happens with a misconfigured
// custom file.
func PickIdentities(rng *rand.Rand, pool []Identity, n int) []Identity {
	idx := rng.Perm(len(pool))
	out := make([]Identity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pool[idx[i%len(idx)]])
	}
	return out
}
