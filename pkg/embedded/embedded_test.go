package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/effects.yaml": {Data: []byte("effects: []\n")},
		"data/manager.yaml": {Data: []byte("maxParticles: 10\n")},
	}
}

// chdirTemp 切换到空的临时目录，保证磁盘上没有 data/
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestIsInitialized(t *testing.T) {
	Reset()
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
	Reset()
}

func TestReadFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Cleanup(Reset)

	t.Run("未初始化且磁盘无文件时报错", func(t *testing.T) {
		Reset()
		if _, err := ReadFile("data/effects.yaml"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("回退到嵌入副本", func(t *testing.T) {
		Init(testFS())
		data, err := ReadFile("./data/manager.yaml")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(data) != "maxParticles: 10\n" {
			t.Errorf("data = %q", data)
		}
	})

	t.Run("磁盘文件优先", func(t *testing.T) {
		Init(testFS())
		if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "data", "manager.yaml"), []byte("maxParticles: 20\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		data, err := ReadFile("data/manager.yaml")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(data) != "maxParticles: 20\n" {
			t.Errorf("data = %q, want disk copy", data)
		}
	})

	t.Run("非 data 前缀不回退到嵌入副本", func(t *testing.T) {
		Init(fstest.MapFS{"assets/x.png": {Data: []byte{1}}})
		if _, err := ReadFile("assets/x.png"); err == nil {
			t.Error("expected not-exist error")
		}
	})
}

func TestExistsAndGlob(t *testing.T) {
	chdirTemp(t)
	t.Cleanup(Reset)

	Reset()
	if Exists("data/effects.yaml") {
		t.Error("Exists before Init should be false")
	}
	if _, err := Glob("data/*.yaml"); err == nil {
		t.Error("Glob before Init should fail")
	}

	Init(testFS())
	if !Exists("data/effects.yaml") {
		t.Error("Exists should find embedded file")
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists should be false for missing file")
	}
	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("matches = %v, want 2 files", matches)
	}
}
