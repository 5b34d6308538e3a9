package tuning

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the name of the embedded default tuning file.
const DefaultFile = "smoke.yaml"

//go:embed smoke.yaml
var defaultsFS embed.FS

// read loads name from disk, falling back to the embedded copy when the file
// does not exist on disk and an embedded file of the same base name exists.
func read(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if embedded, embErr := defaultsFS.ReadFile(filepath.Base(filepath.ToSlash(name))); embErr == nil {
		return embedded, nil
	}
	return nil, err
}

func isTOML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".toml")
}

func mustDefaults() []byte {
	data, err := defaultsFS.ReadFile(DefaultFile)
	if err != nil {
		panic(fmt.Sprintf("tuning: embedded %s: %v", DefaultFile, err))
	}
	return data
}
