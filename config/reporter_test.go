package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	bundle := filepath.Join(dir, "bundle.css")
	if err := os.WriteFile(bundle, []byte(".x{}"), 0644); err != nil {
		t.Fatal(err)
	}
	sass := filepath.Join(dir, "sass")
	if err := os.MkdirAll(filepath.Join(sass, "deep"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sass, "deep", "_m.scss"), []byte("$a: 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("output/bundle.css", bundle)
	r.Store("absent", filepath.Join(dir, "nothing-here"))
	r.StoreData("scopes/button.tree", []byte("stylesheet button"))
	if err := r.StoreCopy("intermediate", sass); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// snapshot must not see later changes
	if err := os.WriteFile(filepath.Join(sass, "late.scss"), []byte("late"), 0644); err != nil {
		t.Fatal(err)
	}

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	var names []string
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	want := []string{"MANIFEST", "intermediate/deep/_m.scss", "output/bundle.css", "scopes/button.tree"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("archive entries = %v, want %v", names, want)
	}
	if files["output/bundle.css"] != ".x{}" {
		t.Errorf("bundle = %q", files["output/bundle.css"])
	}
	if !strings.Contains(files["MANIFEST"], "intermediate\t"+sass+" (snapshot)") {
		t.Errorf("MANIFEST does not describe snapshot:\n%s", files["MANIFEST"])
	}
	if !strings.Contains(files["MANIFEST"], "scopes/button.tree\t<17 bytes>") {
		t.Errorf("MANIFEST does not describe data entry:\n%s", files["MANIFEST"])
	}
}

func TestReport_CloseRemovesSnapshots(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "module.scss")
	if err := os.WriteFile(src, []byte("$a: 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	r := &Report{entries: make(map[string]entry)}
	f, err := os.Create(filepath.Join(dir, "report.zip"))
	if err != nil {
		t.Fatal(err)
	}
	r.file = f

	if err := r.StoreCopy("module", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// same name twice is versioned
	if err := r.StoreCopy("module", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if len(r.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(r.entries))
	}

	var tmps []string
	for _, e := range r.entries {
		tmps = append(tmps, e.tmp)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for _, tmp := range tmps {
		if _, err := os.Stat(tmp); !os.IsNotExist(err) {
			os.RemoveAll(tmp)
			t.Errorf("snapshot %s was not removed", tmp)
		}
	}
	// original is untouched
	if _, err := os.Stat(src); err != nil {
		t.Errorf("stored file should not be removed: %v", err)
	}
}

func TestReport_StoreCopyMissing(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("x", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing path")
	}
	if len(r.entries) != 0 {
		t.Error("failed snapshot must not be recorded")
	}
}

func TestReport_Redefine(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/one")
	// same path is fine
	r.Store("a", "/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on redefinition")
		}
	}()
	r.Store("a", "/two")
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "/one")
	r.StoreData("b", nil)
	if err := r.StoreCopy("c", "/nowhere"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report must not have a name")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_CloseNilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
