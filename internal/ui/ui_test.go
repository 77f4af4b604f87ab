package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/zoro11031/safefs/pkg/fserr"
	"github.com/zoro11031/safefs/pkg/safefs"
)

func init() {
	color.NoColor = true
}

func TestOutputPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		print func(u *UI)
		want  string
	}{
		{"info", func(u *UI) { u.Infof("copying %d files", 3) }, "[INFO] copying 3 files\n"},
		{"success", func(u *UI) { u.Success("done") }, "[✓] done\n"},
		{"warning", func(u *UI) { u.Warning("careful") }, "[WARNING] careful\n"},
		{"error", func(u *UI) { u.Errorf("failed: %s", "boom") }, "[ERROR] failed: boom\n"},
		{"plain", func(u *UI) { u.Printf("%s=%s", "a", "b") }, "a=b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewWithWriter(&buf))
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestResult(t *testing.T) {
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/a.txt", []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	sfs := safefs.New(safefs.WithFs(mem))

	var buf bytes.Buffer
	u := NewWithWriter(&buf)

	res, err := sfs.SafeCopy("/a.txt", "/b.txt", false)
	if err != nil {
		t.Fatalf("SafeCopy() failed: %v", err)
	}
	u.Result(res)
	if got, want := buf.String(), "[✓] copy /a.txt -> /b.txt\n"; got != want {
		t.Errorf("Result() = %q, want %q", got, want)
	}

	buf.Reset()
	res, _ = sfs.SafeCopy("/a.txt", "/b.txt", false)
	u.Result(res)
	if !strings.HasPrefix(buf.String(), "[ERROR] copy failed: ") {
		t.Errorf("Result() = %q, want an error line", buf.String())
	}
}

func TestEntryAndSettings(t *testing.T) {
	var buf bytes.Buffer
	u := NewWithWriter(&buf)

	u.Entry("/srv/data", true)
	u.Entry("/srv/readme.md", false)
	u.Settings(map[string]string{"OVERWRITE": "false", "CONFIRM": "true"})

	want := "/srv/data/\n/srv/readme.md\nCONFIRM   = true\nOVERWRITE = false\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestConfirmOverwrite(t *testing.T) {
	t.Run("assume yes", func(t *testing.T) {
		u := NewWithWriter(&bytes.Buffer{})
		u.SetAssumeYes(true)
		u.SetNonInteractive(true)

		ok, err := u.ConfirmOverwrite("/x")
		if err != nil || !ok {
			t.Errorf("ConfirmOverwrite() = %v, %v, want true, nil", ok, err)
		}
	})

	t.Run("non-interactive refuses", func(t *testing.T) {
		var buf bytes.Buffer
		u := NewWithWriter(&buf)
		u.SetNonInteractive(true)

		ok, err := u.ConfirmOverwrite("/x")
		if err != nil || ok {
			t.Errorf("ConfirmOverwrite() = %v, %v, want false, nil", ok, err)
		}
		if !strings.Contains(buf.String(), "/x already exists") {
			t.Errorf("output = %q, want a warning about /x", buf.String())
		}
	})

	t.Run("drives the overwrite guard", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		afero.WriteFile(mem, "/x", []byte("x"), 0644)
		afero.WriteFile(mem, "/y", []byte("y"), 0644)

		u := NewWithWriter(&bytes.Buffer{})
		u.SetNonInteractive(true)
		sfs := safefs.New(safefs.WithFs(mem), safefs.WithConfirmer(u))

		_, err := sfs.SafeRename("/x", "/y", false)
		if !errors.Is(err, fserr.ErrDestinationExists) {
			t.Errorf("SafeRename() error = %v, want %v", err, fserr.ErrDestinationExists)
		}
	})
}

func TestPromptYesNoNonInteractive(t *testing.T) {
	u := NewWithWriter(&bytes.Buffer{})
	u.SetNonInteractive(true)

	for _, def := range []bool{true, false} {
		got, err := u.PromptYesNo("continue?", def)
		if err != nil || got != def {
			t.Errorf("PromptYesNo(default %v) = %v, %v, want %v, nil", def, got, err, def)
		}
	}
}
