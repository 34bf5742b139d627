package ui

import (
	"strings"
	"testing"

	"github.com/rivo/tview"
	"github.com/sukechannnn/gitsnap/git"
	"github.com/sukechannnn/gitsnap/util"
)

func TestRenderPaneLines(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		content   string
		exists    bool
		wantLines int
		contains  []string
		excludes  []string
	}{
		{
			name:      "存在しない側",
			filePath:  "main.go",
			exists:    false,
			wantLines: 1,
			contains:  []string{missingAtHeadLabel, util.MissingBg},
		},
		{
			name:      "空ファイル",
			filePath:  "main.go",
			content:   "",
			exists:    true,
			wantLines: 1,
			contains:  []string{emptyFileLabel},
		},
		{
			name:      "Goファイル",
			filePath:  "main.go",
			content:   "package main\n\nfunc main() {}\n",
			exists:    true,
			wantLines: 3,
			contains:  []string{"package", "main"},
		},
		{
			name:      "ハイライトできないファイルはエスケープ",
			filePath:  "notes.unknown_ext_xyz",
			content:   "[red]not a tag\n",
			exists:    true,
			wantLines: 1,
			contains:  []string{"not a tag"},
			excludes:  []string{"[red]not a tag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderPaneLines(tt.filePath, tt.content, tt.exists, missingAtHeadLabel, 2)
			if len(got) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d: %q", tt.wantLines, len(got), got)
			}
			joined := strings.Join(got, "\n")
			for _, want := range tt.contains {
				if !strings.Contains(joined, want) {
					t.Errorf("rendered pane %q does not contain %q", joined, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(joined, unwanted) {
					t.Errorf("rendered pane %q contains %q", joined, unwanted)
				}
			}
		})
	}
}

func TestRenderPaneLinesNumbers(t *testing.T) {
	got := renderPaneLines("a.unknown_ext_xyz", "one\ntwo\n", true, missingAtHeadLabel, 3)
	if !strings.HasPrefix(got[0], "[grey]  1[-] ") {
		t.Errorf("unexpected first line %q", got[0])
	}
	if !strings.HasPrefix(got[1], "[grey]  2[-] ") {
		t.Errorf("unexpected second line %q", got[1])
	}
}

func TestComposePane(t *testing.T) {
	lines := []string{"[red]a[-]", "[red]b[-]"}
	got := composePane(lines, 1)
	parts := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if parts[0] != "[red]a[-]" {
		t.Errorf("line without cursor changed: %q", parts[0])
	}
	if !strings.Contains(parts[1], util.CursorLineBg) {
		t.Errorf("cursor line %q missing cursor background", parts[1])
	}
}

func TestComposePaneKeepsEscapedBrackets(t *testing.T) {
	line := "[grey]  1[-] " + tview.Escape("x := a[i]")
	got := composePane([]string{line, line}, 0)
	parts := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if !strings.Contains(parts[0], "x := a[i[]") {
		t.Errorf("cursor line %q lost the escaped bracket", parts[0])
	}
	if parts[1] != line {
		t.Errorf("line without cursor changed: %q", parts[1])
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name     string
		snapshot git.FileSnapshot
		want     string
	}{
		{"added", git.FileSnapshot{Current: "x", ExistsInWorkdir: true}, "[green]added[-]"},
		{"deleted", git.FileSnapshot{Original: "x", ExistsAtHead: true}, "[red]deleted[-]"},
		{"modified", git.FileSnapshot{Original: "x", Current: "y", ExistsAtHead: true, ExistsInWorkdir: true}, "[yellow]modified[-]"},
		{"unchanged", git.FileSnapshot{Original: "x", Current: "x", ExistsAtHead: true, ExistsInWorkdir: true}, "[grey]unchanged[-]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusText("a.txt", &tt.snapshot)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("statusText() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}
