package component

// TTL is a frame-based time-to-live. TTLSystem destroys the entity once
// Frames runs out.
type TTL struct {
	// Frames remaining (in update ticks)
	Frames int
}

var TTLComponent = NewComponent[TTL]("ttl")
