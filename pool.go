package raven

import "github.com/alnah/go-raven/internal/config"

// Unbounded is the errgroup limit that runs every unit at once.
const Unbounded = -1

// MaxWorkers caps an explicit worker count.
const MaxWorkers = config.MaxWorkers

// ResolveWorkers turns a configured worker count into a goroutine limit.
// 0 (the default) means one goroutine per file; explicit counts are capped
// at MaxWorkers.
func ResolveWorkers(workers int) int {
	if workers <= 0 {
		return Unbounded
	}
	if workers > MaxWorkers {
		return MaxWorkers
	}
	return workers
}
