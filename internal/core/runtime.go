package core

// RuntimeConfig contains configuration passed to a front end at startup.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultRuntimeConfig returns a RuntimeConfig sized for a classic terminal.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
