package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/stickyboard/internal"
)

func TestShowCommand(t *testing.T) {
	cli := newTestCLI(t)

	if _, err := cli.run("show"); !errors.Is(err, internal.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}

	seedBoard(t, cli)
	tests := []struct {
		name        string
		args        []string
		wantContain []string
		wantMissing []string
		wantErr     bool
	}{
		{
			name:        "active session",
			args:        []string{"show"},
			wantContain: []string{"Launch", "Notes: 2", "Urgency", "Write notes", "[2/2]"},
		},
		{
			name:        "limit",
			args:        []string{"show", "--limit", "1"},
			wantContain: []string{"Write notes", "1 more note(s)"},
			wantMissing: []string{"Book venue"},
		},
		{
			name:        "by id",
			args:        []string{"show", "1"},
			wantContain: []string{"Retro", "Notes: 0"},
		},
		{
			name:    "unknown session",
			args:    []string{"show", "5"},
			wantErr: true,
		},
		{
			name:    "archived without id",
			args:    []string{"show", "--archived"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := cli.run(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, missing := range tt.wantMissing {
				if strings.Contains(out, missing) {
					t.Errorf("output should not contain %q:\n%s", missing, out)
				}
			}
		})
	}
}

func TestDisplayNote(t *testing.T) {
	tests := []struct {
		name string
		note internal.Note
		want []string
	}{
		{
			name: "human note",
			note: internal.Note{ID: 1, RX: 2.5, RY: 7, Content: "Call the venue"},
			want: []string{"Note", "[1/3]", "(2.5, 7.0)", "Call the venue"},
		},
		{
			name: "locked ai note with brief",
			note: internal.Note{ID: 2, IsAI: true, Locked: true, Content: "Budget", Brief: "Costly and urgent"},
			want: []string{"AI note", "locked", "Costly and urgent"},
		},
		{
			name: "empty note",
			note: internal.Note{ID: 3},
			want: []string{"(empty note)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displayNote(&buf, 1, tt.note, 3)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "short text",
			text:  "Hello world",
			width: 80,
			want:  "Hello world",
		},
		{
			name:  "long text",
			text:  "one two three four five",
			width: 10,
			want:  "one two\nthree four\nfive",
		},
		{
			name:  "text with newlines",
			text:  "Line 1\nLine 2",
			width: 80,
			want:  "Line 1\nLine 2",
		},
		{
			name:  "empty text",
			text:  "",
			width: 80,
			want:  "",
		},
		{
			name:  "single long word",
			text:  "supercalifragilisticexpialidocious",
			width: 10,
			want:  "supercalifragilisticexpialidocious",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
