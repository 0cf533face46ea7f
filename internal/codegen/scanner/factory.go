package scanner

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultSourceExts lists the extensions scanned when none are configured.
var DefaultSourceExts = []string{".cpp"}

// GenericFactoryName is the dispatcher symbol every export carries; it has the
// same shape as the export's own factory and must be skipped.
const GenericFactoryName = "GetPatcher"

// factoryPattern matches: PatcherFactoryFunctionPtr <name>FactoryFunction
var factoryPattern = regexp.MustCompile(`PatcherFactoryFunctionPtr\s*(?P<name>\w+)FactoryFunction`)

// FactoryMatch is the location of an export's factory symbol.
type FactoryMatch struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	File string `json:"file" yaml:"file" toml:"file"`
	Line int    `json:"line" yaml:"line" toml:"line"`
}

// SourceFiles returns the regular files directly inside dir whose extension is
// one of exts, in directory-listing order.
func SourceFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultSourceExts
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), exts) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// FindFactorySymbol scans the source files in dir line by line and returns the
// first factory name that is not GenericFactoryName. found is false when no
// file holds such a name; err is reserved for I/O failures.
func FindFactorySymbol(dir string, exts []string) (match FactoryMatch, found bool, err error) {
	files, err := SourceFiles(dir, exts)
	if err != nil {
		return FactoryMatch{}, false, err
	}
	for _, path := range files {
		match, found, err = scanFactoryFile(path)
		if err != nil || found {
			return match, found, err
		}
	}
	return FactoryMatch{}, false, nil
}

func scanFactoryFile(path string) (FactoryMatch, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return FactoryMatch{}, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	// generated sources can carry very long lines (embedded tables)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for s.Scan() {
		lineNo++
		if name, ok := parseFactoryLine(s.Text()); ok {
			return FactoryMatch{Name: name, File: path, Line: lineNo}, true, nil
		}
	}
	if err := s.Err(); err != nil {
		return FactoryMatch{}, false, fmt.Errorf("scan %s: %w", path, err)
	}
	return FactoryMatch{}, false, nil
}

// parseFactoryLine returns the first non-generic factory name on line.
func parseFactoryLine(line string) (string, bool) {
	idx := factoryPattern.SubexpIndex("name")
	for _, m := range factoryPattern.FindAllStringSubmatch(line, -1) {
		if name := m[idx]; name != GenericFactoryName {
			return name, true
		}
	}
	return "", false
}
