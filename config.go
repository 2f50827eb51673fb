package ringbuffer

import "go.uber.org/zap"

// Config configures a RingBuffer built with NewWithConfig.
type Config struct {
	// Capacity is the maximum number of held elements. Must be positive.
	Capacity int
	// Logger receives debug entries on overwrite, resize and clear.
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// Observer is notified of every state change. Optional.
	Observer Observer
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	return c
}
