package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	"golang.org/x/crypto/blake2b"
	yaml "gopkg.in/yaml.v3"
)

// WriteOutput replaces path with data. The file is written to a temporary
// sibling and renamed over path, so a failed write never leaves a truncated
// output behind. When path already holds identical content nothing is
// written and written is false, which keeps the file's mtime stable for the
// surrounding build. force skips that comparison and always replaces path.
func WriteOutput(path string, data []byte, force bool) (written bool, err error) {
	if !force {
		if same, err := sameContent(path, data); err != nil {
			return false, err
		} else if same {
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return false, fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}
	return true, nil
}

func sameContent(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read existing output: %w", err)
	}
	if len(existing) != len(data) {
		return false, nil
	}
	a, b := blake2b.Sum256(existing), blake2b.Sum256(data)
	return bytes.Equal(a[:], b[:]), nil
}

// Digest returns the hex blake2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

type includeManifest struct {
	IncludePaths []string `json:"includePaths" yaml:"includePaths" toml:"includePaths"`
	Output       string   `json:"output" yaml:"output" toml:"output"`
	Digest       string   `json:"digest" yaml:"digest" toml:"digest"`
}

// WriteIncludeManifest records the include paths the generated output needs,
// encoded by the extension of path (.json, .yaml/.yml or .toml).
func WriteIncludeManifest(path, output string, res *Result) error {
	m := includeManifest{
		IncludePaths: res.IncludePaths,
		Output:       output,
		Digest:       Digest([]byte(res.Text)),
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(m, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	case ".toml":
		data, err = toml.Marshal(m)
	default:
		return fmt.Errorf("unsupported manifest format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("encode include manifest: %w", err)
	}
	if _, err := WriteOutput(path, data, false); err != nil {
		return err
	}
	return nil
}
