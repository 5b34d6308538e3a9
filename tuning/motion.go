package tuning

import (
	"os"
	"strconv"
	"strings"
)

// EnvReducedMotion is the environment variable carrying the user's
// reduced-motion preference.
const EnvReducedMotion = "SMOKETRAIL_REDUCED_MOTION"

// ReducedMotion reports whether animation must stay off. Any of the flag, the
// config file or a truthy environment variable is enough. A nil getenv reads
// the process environment.
func ReducedMotion(flag bool, cfg Config, getenv func(string) string) bool {
	if flag || cfg.ReducedMotion {
		return true
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	v := strings.TrimSpace(getenv(EnvReducedMotion))
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return strings.EqualFold(v, "reduce")
}
