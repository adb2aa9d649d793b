package config

import "time"

// ConfigProvider defines the interface for configuration access
type ConfigProvider interface {
	GetSender() string
	GetReceiver() string
	GetReplyTo() string
	GetUsername() string
	GetPassword() string
	GetServer() string
	GetPort() int
	UseTLS() bool
	GetAttachment() string
	GetTimeout() time.Duration
	GetStorePath() string
	GetLogPath() string
	Validate() error
}

// ConfigImpl implements ConfigProvider interface
type ConfigImpl struct {
	cfg Config
}

// NewConfigProvider creates a new ConfigProvider instance. The provider
// keeps its own copy, so later changes to cfg are not observed.
func NewConfigProvider(cfg *Config) ConfigProvider {
	return &ConfigImpl{cfg: *cfg}
}

func (c *ConfigImpl) GetSender() string {
	return c.cfg.Sender
}

func (c *ConfigImpl) GetReceiver() string {
	return c.cfg.Receiver
}

func (c *ConfigImpl) GetReplyTo() string {
	return c.cfg.ReplyTo
}

func (c *ConfigImpl) GetUsername() string {
	return c.cfg.Username
}

func (c *ConfigImpl) GetPassword() string {
	return c.cfg.Password
}

func (c *ConfigImpl) GetServer() string {
	return c.cfg.Server
}

func (c *ConfigImpl) GetPort() int {
	return c.cfg.Port
}

func (c *ConfigImpl) UseTLS() bool {
	return c.cfg.UseTLS
}

func (c *ConfigImpl) GetAttachment() string {
	return c.cfg.Attachment
}

func (c *ConfigImpl) GetTimeout() time.Duration {
	return time.Duration(c.cfg.Timeout) * time.Second
}

func (c *ConfigImpl) GetStorePath() string {
	return c.cfg.StorePath
}

func (c *ConfigImpl) GetLogPath() string {
	return c.cfg.LogPath
}

func (c *ConfigImpl) Validate() error {
	return c.cfg.Validate()
}
