package filer

// Option настраивает Config в стиле functional options.
type Option func(*Config)

// WithDiskFS выбирает дисковую файловую систему.
// Непустой basePath ограничивает все операции этим поддеревом.
func WithDiskFS(basePath string) Option {
	return func(c *Config) {
		c.Type = DiskFS
		c.BasePath = basePath
	}
}

// WithMemoryFS выбирает файловую систему в памяти с корнем root.
func WithMemoryFS(root string) Option {
	return func(c *Config) {
		c.Type = MemoryFS
		c.BasePath = root
	}
}

// NewConfig собирает Config из опций поверх DefaultConfig.
func NewConfig(options ...Option) Config {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	return config
}
