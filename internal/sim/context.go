package sim

import (
	"math/rand"
	"time"
)

// Context bundles the random source and clock the whole derivation chain
// draws from. The engine goroutine owns it exclusively; *rand.Rand is not
// safe for concurrent use.
type Context struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewContext builds a Context seeded deterministically when seed != 0, or
// from the wall clock otherwise.
func NewContext(seed int64) *Context {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Context{
		Rand: rand.New(rand.NewSource(seed)),
		Now:  func() time.Time { return time.Now().UTC() },
	}
}
