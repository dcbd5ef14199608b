/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package propconfig

import (
	"sync"

	"github.com/suparena/propconfig/codec"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/registry"
)

// Config is a thread-safe holder for a configuration registry.
type Config struct {
	mu  sync.RWMutex
	reg *registry.Registry
}

// New creates a Config holding the catalog defaults.
func New() *Config {
	return &Config{reg: registry.New()}
}

var (
	defaultOnce   sync.Once
	defaultConfig *Config
)

// Default returns the process-wide Config, creating it on first use.
func Default() *Config {
	defaultOnce.Do(func() {
		defaultConfig = New()
	})
	return defaultConfig
}

// View calls fn with the registry under the read lock. fn must not modify it.
func (c *Config) View(fn func(r *registry.Registry) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.reg)
}

// Update calls fn with the registry under the write lock. Changes made by fn
// before it fails are kept.
func (c *Config) Update(fn func(r *registry.Registry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.reg)
}

// Apply calls fn with a copy of the registry and installs the copy only if fn
// succeeds.
func (c *Config) Apply(fn func(r *registry.Registry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.reg.Clone()
	if err := fn(next); err != nil {
		return err
	}
	c.reg = next
	return nil
}

// Reset restores every key to its default.
func (c *Config) Reset() {
	c.mu.Lock()
	c.reg = registry.New()
	c.mu.Unlock()
}

// GetBool returns the value of a Bool key.
func (c *Config) GetBool(k keys.Key) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reg.GetBool(k)
}

// GetDouble returns the value of a Double key.
func (c *Config) GetDouble(k keys.Key) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reg.GetDouble(k)
}

// GetString returns the value of a String key.
func (c *Config) GetString(k keys.Key) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reg.GetString(k)
}

// SetBool changes the Bool setting k. It fails with errors.ErrTypeMismatch
// if k is not a Bool key.
func (c *Config) SetBool(k keys.Key, v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.SetBool(k, v)
}

// SetDouble changes the Double setting k. It fails with errors.ErrTypeMismatch
// if k is not a Double key.
func (c *Config) SetDouble(k keys.Key, v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.SetDouble(k, v)
}

// SetString changes the String setting k. It fails with errors.ErrTypeMismatch
// if k is not a String key.
func (c *Config) SetString(k keys.Key, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.SetString(k, v)
}

// GetJSON returns the configuration as a JSON document.
func (c *Config) GetJSON() (codec.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return codec.Encode(c.reg)
}

// GetJSONString returns the configuration as compact JSON text.
func (c *Config) GetJSONString() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return codec.EncodeString(c.reg)
}

// SetJSON applies the members of doc. See codec.Decode for failure behavior.
func (c *Config) SetJSON(doc codec.Document) error {
	return c.Update(func(r *registry.Registry) error {
		return codec.Decode(r, doc)
	})
}

// SetJSONString applies the members of a JSON object given as text. Members
// applied before a failing member stay applied.
func (c *Config) SetJSONString(text string) error {
	return c.Update(func(r *registry.Registry) error {
		return codec.DecodeString(r, text)
	})
}

// ApplyJSONString applies a JSON object given as text completely or not at
// all.
func (c *Config) ApplyJSONString(text string) error {
	return c.Apply(func(r *registry.Registry) error {
		return codec.DecodeString(r, text)
	})
}
