package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/jmgilman/go/errors"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestRun_NodeCommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"add"}, "adding the node\n"},
		{[]string{"remove"}, "removing the node\n"},
		{[]string{"list"}, "listing out nodes\n"},
		{[]string{"add", "--title=x"}, "adding the node\n"},
		{[]string{"remove", "--id=1", "--force"}, "removing the node\n"},
		{[]string{"--log-level", "error", "list"}, "listing out nodes\n"},
		{[]string{"--", "add"}, "adding the node\n"},
		{[]string{"--title", "add"}, "adding the node\n"},
		{[]string{"--log-level=debug", "--log-format=json", "--", "remove", "--x=1"}, "removing the node\n"},
		{[]string{"--force", "list", "--title=y"}, "listing out nodes\n"},
	}
	for _, c := range cases {
		out, _, err := run(t, c.args...)
		if err != nil {
			t.Fatalf("%v: %v", c.args, err)
		}
		if out != c.want {
			t.Fatalf("%v: got %q want %q", c.args, out, c.want)
		}
	}
}

func TestRun_UnrecognizedIsSilent(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}, {"Add"}, {"--title=x"}, {"bogus", "--x=1"}, {"--", "bogus"}, {"--title", "Add"}} {
		out, errOut, err := run(t, args...)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", args, err)
		}
		if out != "" || errOut != "" {
			t.Fatalf("%v: expected no output, got stdout=%q stderr=%q", args, out, errOut)
		}
	}
}

func TestRun_UnrecognizedLogsAtDebug(t *testing.T) {
	out, errOut, err := run(t, "--log-level=debug", "--log-format=json", "bogus")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout must stay empty, got %q", out)
	}
	if !strings.Contains(errOut, `"msg":"unrecognized command"`) || !strings.Contains(errOut, `"command":"bogus"`) {
		t.Fatalf("missing debug record: %q", errOut)
	}
}

func TestRun_Idempotent(t *testing.T) {
	first, _, err := run(t, "add", "--title=x")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, _, err := run(t, "add", "--title=x")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first != second {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.cue")
	if err := os.WriteFile(good, []byte("configVersion: \"1\"\nlog: { level: \"debug\", format: \"json\" }\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, errOut, err := run(t, "--config", good, "add")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "adding the node\n" {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(errOut, `"msg":"dispatch"`) {
		t.Fatalf("config log level not applied: %q", errOut)
	}

	// Flags win over the config file.
	_, errOut, err = run(t, "-c", good, "--log-level=warn", "add")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if errOut != "" {
		t.Fatalf("expected quiet stderr, got %q", errOut)
	}

	bad := filepath.Join(dir, "bad.cue")
	if err := os.WriteFile(bad, []byte("configVersion: \"2\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = run(t, "--config", bad, "add")
	if perrors.GetCode(err) != perrors.CodeInvalidConfig {
		t.Fatalf("want INVALID_CONFIGURATION, got %v", err)
	}
	if !strings.Contains(err.Error(), `unsupported configVersion: "2" (supported: 1)`) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRun_BadLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level=loud", "add")
	if perrors.GetCode(err) != perrors.CodeInvalidInput {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
}

func TestRun_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"nodecli", "add", "remove", "list", "fs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("usage missing %q:\n%s", want, out)
		}
	}
}

func TestValueFlags(t *testing.T) {
	cmd := NewRootCmd(cmdenv.New())
	got := strings.Join(valueFlags(cmd.PersistentFlags()), ",")
	for _, want := range []string{"config", "c", "log-level", "log-format"} {
		if !strings.Contains(","+got+",", ","+want+",") {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestRun_CommandAfterSeparatorLogsDispatch(t *testing.T) {
	out, errOut, err := run(t, "--log-level=debug", "--log-format=json", "--", "add")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "adding the node\n" {
		t.Fatalf("got %q", out)
	}
	if strings.Contains(errOut, "unrecognized command") || !strings.Contains(errOut, `"msg":"dispatch"`) {
		t.Fatalf("unexpected diagnostics: %q", errOut)
	}
}
