package buildinfo

import (
	"testing"

	"github.com/flarebyte/nodecli/cli"
)

func TestSummary(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	oldCV, oldCD := cli.Version, cli.Date
	t.Cleanup(func() {
		Version, Commit, Date = oldV, oldC, oldD
		cli.Version, cli.Date = oldCV, oldCD
	})

	Version, Commit, Date = "", "", ""
	cli.Version, cli.Date = "", ""
	if got := Summary(); got != "dev" {
		t.Fatalf("empty: got %q", got)
	}

	cli.Version, cli.Date = "0.9.0", "2026-01-02"
	if got := Summary(); got != "0.9.0 (date=2026-01-02)" {
		t.Fatalf("cli fallback: got %q", got)
	}

	Version, Commit = "1.0.0", "abcdef0123"
	if got := Summary(); got != "1.0.0 (commit=abcdef0, date=2026-01-02)" {
		t.Fatalf("ldflags: got %q", got)
	}
}
