package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Scan() error = %v, want ErrInvalidPath", err)
	}
}

func TestScanFileRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html></html>")

	_, err := Scan(filepath.Join(dir, "index.html"))
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Scan() on a file = %v, want ErrInvalidPath", err)
	}
}

func TestScanPrunesIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "x")
	writeFile(t, dir, "netlify/functions/handler.py", "x")
	writeFile(t, dir, "node_modules/pkg/index.js", "x")
	writeFile(t, dir, ".git/config", "x")
	writeFile(t, dir, "__pycache__/mod.pyc", "x")
	writeFile(t, dir, "venv/lib/site.py", "x")
	writeFile(t, dir, ".venv/lib/site.py", "x")
	writeFile(t, dir, ".netlify/state.json", "x")

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := make(map[string]bool)
	for _, f := range files {
		got[f] = true
	}

	if !got["index.html"] || !got["netlify/functions/handler.py"] {
		t.Errorf("Scan() missing expected files, got %v", files)
	}
	for _, banned := range []string{
		"node_modules/pkg/index.js",
		".git/config",
		"__pycache__/mod.pyc",
		"venv/lib/site.py",
		".venv/lib/site.py",
		".netlify/state.json",
	} {
		if got[banned] {
			t.Errorf("Scan() included pruned path %s", banned)
		}
	}
}

func TestScanEmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Scan() = %v, want empty", files)
	}
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "netlify.toml", "[build]")
	writeFile(t, dir, "src/app/config.json", "{}")
	writeFile(t, dir, "node_modules/pkg/package.json", "{}")

	if path, ok := FindFile(dir, "netlify.toml"); !ok || path != filepath.Join(dir, "netlify.toml") {
		t.Errorf("FindFile(netlify.toml) = %q, %v", path, ok)
	}

	// Nested file is found by walking.
	if path, ok := FindFile(dir, "config.json"); !ok || path != filepath.Join(dir, "src", "app", "config.json") {
		t.Errorf("FindFile(config.json) = %q, %v", path, ok)
	}

	// Files under pruned directories are invisible.
	if _, ok := FindFile(dir, "package.json"); ok {
		t.Error("FindFile(package.json) found a file under node_modules")
	}

	if _, ok := FindFile(dir, "missing.txt"); ok {
		t.Error("FindFile(missing.txt) = true, want false")
	}
}

func TestReadTextFileRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(bin, []byte{0x00, 0x01, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadTextFile(bin); err == nil {
		t.Error("ReadTextFile() on binary data succeeded, want error")
	}

	writeFile(t, dir, "ok.txt", "hello")
	content, err := ReadTextFile(filepath.Join(dir, "ok.txt"))
	if err != nil || content != "hello" {
		t.Errorf("ReadTextFile() = %q, %v", content, err)
	}
}

func TestReadLowercase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "import OpenAI\n")

	content, ok := ReadLowercase(filepath.Join(dir, "main.py"))
	if !ok {
		t.Fatal("ReadLowercase() ok = false")
	}
	if content != "import openai\n" {
		t.Errorf("ReadLowercase() = %q", content)
	}

	if _, ok := ReadLowercase(filepath.Join(dir, "missing.py")); ok {
		t.Error("ReadLowercase() on missing file ok = true")
	}
}
