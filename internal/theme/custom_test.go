package theme

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		wantID   string
		wantName string
		wantErr  error
	}{
		{
			name:     "explicit id",
			file:     "whatever.json",
			body:     `{"id": "paper", "display_name": "Paper", "bright_blue": "#3366ff"}`,
			wantID:   "paper",
			wantName: "Paper",
		},
		{
			name:     "id from file name",
			file:     "Night-Owl.json",
			body:     `{"fg": "#d6deeb", "bg": "#011627"}`,
			wantID:   "night-owl",
			wantName: "night-owl",
		},
		{
			name:    "no chrome colors",
			file:    "empty.json",
			body:    `{"id": "empty", "cursor": "#ffffff"}`,
			wantErr: ErrNoChromeColors,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			got, err := LoadCustomThemeFile(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.ID != tt.wantID || got.DisplayName != tt.wantName {
				t.Errorf("id/name = %q/%q, want %q/%q", got.ID, got.DisplayName, tt.wantID, tt.wantName)
			}
			for i, slot := range chromeSlots {
				if *slot.bright(got) == nil {
					t.Errorf("chrome slot %d left empty", i)
				}
			}
		})
	}
}

func TestLoadCustomThemeFileInvalidJSON(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "broken.json", `{"id": `)
	if _, err := LoadCustomThemeFile(path); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadCustomThemesSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "floatwm-good.json", `{"id": "floatwm-good", "bright_black": "#444444"}`)
	writeTheme(t, dir, "bad.json", `not json`)
	writeTheme(t, dir, "notes.txt", `{"id": "ignored", "white": "#ffffff"}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err == nil {
		t.Error("bad.json did not produce an error")
	}
	if !slices.Equal(loaded, []string{"floatwm-good"}) {
		t.Errorf("loaded = %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "floatwm-good") {
		t.Error("theme was not registered")
	}
}

func TestLoadCustomThemesMissingDir(t *testing.T) {
	if _, err := LoadCustomThemes(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestCompleteChrome(t *testing.T) {
	th := &tint.Tint{
		Blue: tint.FromHex("#0000aa"),
		Fg:   tint.FromHex("#cccccc"),
		Bg:   tint.FromHex("#111111"),
	}

	defaulted := completeChrome(th)

	if defaulted != 3 {
		t.Errorf("defaulted = %d, want 3 (unfocused, overlay, interacting)", defaulted)
	}
	if th.BrightBlue == th.Blue || *th.BrightBlue != *th.Blue {
		t.Error("focused border should be a copy of blue")
	}
	if *th.White != *th.Fg {
		t.Error("dock should borrow the foreground")
	}
	if th.Black == nil {
		t.Error("button glyph color not filled")
	}
}
