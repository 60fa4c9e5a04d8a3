package ids

import (
	"math/rand"
	"time"
)

// NextID returns a collision-resistant numeric identifier: seven random
// digits followed by the current wall-clock second truncated to three
// digits. Ids are only required to be unique within a single output
// file; collisions within one run are possible but low-probability.
func NextID() int64 {
	randomPart := rand.Int63n(9000000) + 1000000
	timestampPart := time.Now().Unix() % 1000
	return randomPart*1000 + timestampPart
}
