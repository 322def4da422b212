package paths

import (
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"badc0de.net/pkg/go-tibia-assets/ttesting"
)

func TestFindInAssetsDir(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "Tibia.spr")
	if err := os.WriteFile(want, []byte("spr"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAssetsDir, dir)

	if got := Find("Tibia.spr"); got != want {
		t.Errorf("Find = %q; want %q", got, want)
	}
	f, err := Open("Tibia.spr")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	if string(b) != "spr" {
		t.Errorf("read %q", b)
	}
}

func TestSetupFilePathFlagSet(t *testing.T) {
	dir := t.TempDir()
	found := filepath.Join(dir, "Tibia.dat")
	if err := os.WriteFile(found, []byte("dat"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAssetsDir, dir)

	var dat, missing string
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	SetupFilePathFlagSet(fs, "Tibia.dat", "tibia_dat_path", &dat)
	SetupFilePathFlagSet(fs, "no-such-datafile.spr", "tibia_spr_path", &missing)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if dat != found {
		t.Errorf("default = %q; want %q", dat, found)
	}
	if missing != "" {
		t.Errorf("default for a missing file = %q; want empty", missing)
	}

	if err := fs.Parse([]string{"-tibia_dat_path", "/elsewhere/Tibia.dat"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if dat != "/elsewhere/Tibia.dat" {
		t.Errorf("after Parse = %q", dat)
	}
}

func TestOpenMissing(t *testing.T) {
	t.Setenv(EnvAssetsDir, t.TempDir())
	if got := Find("no-such-datafile.dat"); got != "" {
		t.Errorf("Find = %q; want empty", got)
	}
	_, err := Open("no-such-datafile.dat")
	ttesting.AssertErrorIs(t, "Open", err, os.ErrNotExist)
}

func TestNoFindOpenHTTP(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Tibia.dat" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	for i := 0; i < 2; i++ {
		f, err := NoFindOpen(srv.URL + "/Tibia.dat")
		if err != nil {
			t.Fatalf("NoFindOpen: %v", err)
		}
		buf := make([]byte, 3)
		if _, err := f.ReadAt(buf, 4); err != nil || string(buf) != "456" {
			t.Errorf("ReadAt = %q, %v", buf, err)
		}
		f.Close()
	}
	ttesting.AssertEqualInt(t, "downloads", hits, 1)

	_, err := NoFindOpen(srv.URL + "/missing")
	ttesting.AssertErrorIs(t, "missing", err, os.ErrNotExist)
}
