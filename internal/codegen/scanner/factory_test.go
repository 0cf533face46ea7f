package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFindFactorySymbolSkipsGeneric(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "rnbo_source.cpp", `namespace RNBO {
PatcherFactoryFunctionPtr GetPatcherFactoryFunction(PlatformInterface* platformInterface)
{
    return creaternbomatic;
}
extern "C" PatcherFactoryFunctionPtr FooFactoryFunction(PlatformInterface* platformInterface)
{
    return GetPatcherFactoryFunction(platformInterface);
}
}
`)

	match, found, err := FindFactorySymbol(dir, nil)
	if err != nil {
		t.Fatalf("FindFactorySymbol: %v", err)
	}
	if !found {
		t.Fatalf("Expected a factory symbol, got none")
	}
	if match.Name != "Foo" {
		t.Errorf("Expected name 'Foo', got '%s'", match.Name)
	}
	if match.Line != 6 {
		t.Errorf("Expected match on line 6, got %d", match.Line)
	}
	if filepath.Base(match.File) != "rnbo_source.cpp" {
		t.Errorf("Expected match in rnbo_source.cpp, got '%s'", match.File)
	}
}

func TestFindFactorySymbolSameLine(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cpp", "PatcherFactoryFunctionPtr GetPatcherFactoryFunction(); PatcherFactoryFunctionPtr BarFactoryFunction();\n")

	match, found, err := FindFactorySymbol(dir, nil)
	if err != nil || !found {
		t.Fatalf("Expected match, got found=%v err=%v", found, err)
	}
	if match.Name != "Bar" {
		t.Errorf("Expected name 'Bar', got '%s'", match.Name)
	}
}

func TestFindFactorySymbolFirstFileWins(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cpp", "PatcherFactoryFunctionPtr AlphaFactoryFunction();\n")
	writeSource(t, dir, "b.cpp", "PatcherFactoryFunctionPtr BetaFactoryFunction();\n")

	match, found, err := FindFactorySymbol(dir, nil)
	if err != nil || !found {
		t.Fatalf("Expected match, got found=%v err=%v", found, err)
	}
	if match.Name != "Alpha" {
		t.Errorf("Expected name 'Alpha', got '%s'", match.Name)
	}
}

func TestFindFactorySymbolIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "notes.txt", "PatcherFactoryFunctionPtr NopeFactoryFunction();\n")
	writeSource(t, dir, "rnbo_source.cpp", "PatcherFactoryFunctionPtr GetPatcherFactoryFunction();\n")

	_, found, err := FindFactorySymbol(dir, nil)
	if err != nil {
		t.Fatalf("FindFactorySymbol: %v", err)
	}
	if found {
		t.Errorf("Expected no factory symbol when only the generic one is present")
	}

	match, found, err := FindFactorySymbol(dir, []string{".txt"})
	if err != nil || !found {
		t.Fatalf("Expected match with .txt extension, got found=%v err=%v", found, err)
	}
	if match.Name != "Nope" {
		t.Errorf("Expected name 'Nope', got '%s'", match.Name)
	}
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.cpp", "")
	writeSource(t, dir, "a.CPP", "")
	writeSource(t, dir, "description.json", "{}")
	if err := os.Mkdir(filepath.Join(dir, "rnbo.cpp"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := SourceFiles(dir, nil)
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 source files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.CPP" || filepath.Base(files[1]) != "b.cpp" {
		t.Errorf("Unexpected order: %v", files)
	}
}

func TestSourceFilesMissingDir(t *testing.T) {
	if _, err := SourceFiles(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Errorf("Expected error for missing directory")
	}
}
