package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mhstyle.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindMhstyleTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[project]\nname = \"demo\"\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findMhstyleToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if got != want {
		t.Errorf("found %s, want %s", got, want)
	}
}

func TestLoadProjectManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"demo\"\npaths = [\"src\", \"toolbox\"]\n")

	m, ok, err := loadProjectManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if m.Config.Project.Name != "demo" {
		t.Errorf("name %q", m.Config.Project.Name)
	}
	paths := m.AbsPaths()
	if len(paths) != 2 || paths[0] != filepath.Join(m.Root, "src") {
		t.Errorf("paths %v", paths)
	}
}

func TestLoadProjectManifestRejectsMissingName(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\npaths = [\"src\"]\n")

	_, _, err := loadProjectManifest(root)
	if err == nil {
		t.Fatal("expected an error for missing name")
	}
}

func TestManifestWithoutPathsCoversRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"demo\"\n")

	m, ok, err := loadProjectManifest(root)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%t err=%v", ok, err)
	}
	paths := m.AbsPaths()
	if len(paths) != 1 || paths[0] != m.Root {
		t.Errorf("paths %v, want [%s]", paths, m.Root)
	}
}
