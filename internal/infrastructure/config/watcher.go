package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bnema/bezier/internal/logging"
)

// reloadOps are the file events that can change the config contents.
const reloadOps = fsnotify.Write | fsnotify.Create

// Watch reloads the config whenever its file is written. Edits that fail
// validation are logged and the previous config stays in effect.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return nil
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&reloadOps == 0 {
			return
		}
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")
		if err := m.Reload(); err != nil {
			log.Warn().Err(err).Msg("config edit rejected, keeping previous values")
		}
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange registers fn to receive every successfully reloaded config.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, fn)
	m.mu.Unlock()
}

// Reload re-reads the config file and, when it decodes and validates,
// hands a copy to every registered callback outside the lock.
func (m *Manager) Reload() error {
	m.mu.Lock()
	err := m.viper.ReadInConfig()
	if err == nil {
		err = m.decode()
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}
	snapshot := *m.config
	callbacks := append([]func(*Config){}, m.callbacks...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(&snapshot)
	}
	return nil
}
