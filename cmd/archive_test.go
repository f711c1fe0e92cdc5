package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/stickyboard/internal"
)

func TestArchiveRoundTrip(t *testing.T) {
	cli := newTestCLI(t)
	seedBoard(t, cli)

	out := cli.mustRun("archive", "--force")
	if !strings.Contains(out, "Archived 2 session(s)") {
		t.Errorf("unexpected output: %q", out)
	}

	out = cli.mustRun("archive", "list")
	for _, want := range []string{"2 archived session(s)", "Launch", "Retro"} {
		if !strings.Contains(out, want) {
			t.Errorf("archive list missing %q:\n%s", want, out)
		}
	}

	out = cli.mustRun("show", "0", "--archived")
	if !strings.Contains(out, "Launch") || !strings.Contains(out, "Book venue") {
		t.Errorf("archived show missing content:\n%s", out)
	}

	out = cli.mustRun("export", "--archived", "--format", "jsonl")
	if got := strings.Count(strings.TrimSpace(out), "\n") + 1; got != 2 {
		t.Errorf("expected 2 jsonl lines, got %d:\n%s", got, out)
	}

	cli.mustRun("archive", "clear")
	if _, err := cli.run("archive", "list"); err == nil {
		t.Error("expected an error listing a cleared archive")
	}
}

func TestArchiveUpToDate(t *testing.T) {
	cli := newTestCLI(t)
	seedBoard(t, cli)

	am := internal.NewArchiveManager(cli.dir + "/archive")
	if err := am.SaveDocuments(nil, cli.db); err != nil {
		t.Fatal(err)
	}

	out := cli.mustRun("archive")
	if !strings.Contains(out, "up to date") {
		t.Errorf("unexpected output: %q", out)
	}
}
