package record

import "time"

// Clock supplies the per-operation timestamp. The uniqueness guarantee
// of the registry is scoped to these timestamps, so the clock's
// resolution decides when two legitimate calls collide.
type Clock interface {
	// Now returns the current timestamp in whole seconds.
	Now() int64
}

// SystemClock is the production clock: wall time at one-second
// resolution. The coarse resolution is deliberate; two mutations of
// the same record within the same second produce the same fingerprint
// and the second one is rejected as a replay.
type SystemClock struct{}

// Now returns the current Unix time in seconds.
func (SystemClock) Now() int64 {
	return time.Now().Unix()
}
