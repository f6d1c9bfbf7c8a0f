package depot

import "go.uber.org/zap"

// Config holds global configuration picked up by worlds at construction
var Config config = config{}

type config struct {
	logger *zap.Logger
}

// SetLogger configures the logger new worlds write to. nil restores the no-op logger.
func (c *config) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

func (c *config) Logger() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}
