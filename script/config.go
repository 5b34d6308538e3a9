package script

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/smoke"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/tuning"
)

// ScriptPath resolves the drift script named by cfg against the directory of
// the config file it came from. It returns "" when no script is configured.
func ScriptPath(cfg tuning.Config, configPath string) string {
	name := cfg.Drift.Script
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || configPath == "" {
		return name
	}
	return filepath.Join(filepath.Dir(configPath), name)
}

// ForConfig returns the drift cfg describes. A script that fails to load is
// logged and replaced by the native wave drift.
func ForConfig(cfg tuning.Config, configPath string, logger *log.Logger) smoke.Drift {
	if logger == nil {
		logger = logging.Discard()
	}
	wave := cfg.WaveDrift()
	path := ScriptPath(cfg, configPath)
	if path == "" {
		return wave
	}
	d, err := Load(path, wave, logger)
	if err != nil {
		logger.Warn("script: using native drift", "err", err)
		return wave
	}
	logger.Debug("script: drift loaded", "path", path)
	return d
}
