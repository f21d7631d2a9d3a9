// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX sh")
	}
}

func newTestRunner() (*ExecRunner, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewExecRunner(&out, &out)
	r.Stdin = nil
	return r, &out
}

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r, out := newTestRunner()
	res, err := r.Run(context.Background(), Command("sh", "-c", "echo hello"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.HasPrefix(out.String(), "$ sh -c ") {
		t.Errorf("command line not echoed first: %q", out.String())
	}
	if !strings.Contains(out.String(), "hello\n") {
		t.Errorf("output not streamed: %q", out.String())
	}
}

func TestExecRunner_FatalNonZero(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r, _ := newTestRunner()
	res, err := r.Run(context.Background(), Command("sh", "-c", "exit 3").Named("failing"))
	if !errors.Is(err, ErrStepFailed) {
		t.Fatalf("Run() error = %v, want ErrStepFailed", err)
	}
	if !IsExitOnly(err) {
		t.Errorf("non-zero exit should not carry a cause: %v", err)
	}
	if res.ExitCode != 3 || CodeOf(res, err) != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestExecRunner_BestEffortNonZero(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r, _ := newTestRunner()
	res, err := r.Run(context.Background(), Command("sh", "-c", "exit 2").Tolerant())
	if err != nil {
		t.Fatalf("best-effort call returned error: %v", err)
	}
	if res.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2 recorded", res.ExitCode)
	}
}

func TestExecRunner_ProgramNotFound(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner()
	res, err := r.Run(context.Background(), Command("devcmd-definitely-missing-tool"))
	if err == nil {
		t.Fatal("expected error for missing program")
	}
	if IsExitOnly(err) {
		t.Error("start failure must carry a cause")
	}
	if res.ExitCode != ExitNotFound {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitNotFound)
	}
}

func TestExecRunner_Capture(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r, out := newTestRunner()
	call := Command("sh", "-c", "echo out; echo err >&2")
	call.Capture = true
	res, err := r.Run(context.Background(), call)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Output != "out\n" || res.ErrOutput != "err\n" {
		t.Errorf("captured = %q / %q", res.Output, res.ErrOutput)
	}
	if strings.Contains(out.String(), "out\n") {
		t.Error("captured output leaked to the stream")
	}
}

func TestExecRunner_ExtraEnv(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	r, _ := newTestRunner()
	call := Command("sh", "-c", "printf %s \"$STAGE\"").WithEnv("STAGE", "qa")
	call.Capture = true
	res, err := r.Run(context.Background(), call)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Output != "qa" {
		t.Errorf("STAGE = %q, want qa", res.Output)
	}
}

func TestExecRunner_DryRun(t *testing.T) {
	t.Parallel()

	r, out := newTestRunner()
	r.DryRun = true
	res, err := r.Run(context.Background(), Command("devcmd-definitely-missing-tool", "--flag"))
	if err != nil || res.ExitCode != 0 {
		t.Fatalf("dry run should always succeed, got %v / %d", err, res.ExitCode)
	}
	if out.String() != "$ devcmd-definitely-missing-tool --flag\n" {
		t.Errorf("echo = %q", out.String())
	}
}

func TestExecRunner_EmptyProgram(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner()
	_, err := r.Run(context.Background(), Call{Label: "nothing"})
	if !errors.Is(err, ErrEmptyProgram) {
		t.Errorf("Run() error = %v, want ErrEmptyProgram", err)
	}
}

func TestExecRunner_CustomEcho(t *testing.T) {
	t.Parallel()

	var lines []string
	r, _ := newTestRunner()
	r.DryRun = true
	r.Echo = func(line string) { lines = append(lines, line) }
	if _, err := r.Run(context.Background(), Command("mypy", "app")); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "mypy app" {
		t.Errorf("echoed = %v", lines)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deploy.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestExecRunner_HostScript(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	script := writeScript(t, "printf '%s' \"$STAGE\"\nexit 4\n")
	r, _ := newTestRunner()
	r.ScriptShell = "sh"
	call := ScriptCall(script).WithEnv("STAGE", "prod")
	call.Capture = true

	res, err := r.Run(context.Background(), call)
	if CodeOf(res, err) != 4 {
		t.Fatalf("exit code = %d, want 4 (err %v)", CodeOf(res, err), err)
	}
	if res.Output != "prod" {
		t.Errorf("output = %q, want prod", res.Output)
	}
}

func TestExecRunner_VirtualScript(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "echo \"stage=$STAGE args=$*\"\nexit 7\n")
	r, out := newTestRunner()
	r.VirtualShell = true
	call := ScriptCall(script, "--flag").WithEnv("STAGE", "dev")
	call.Capture = true

	res, err := r.Run(context.Background(), call)
	if !IsExitOnly(err) || CodeOf(res, err) != 7 {
		t.Fatalf("Run() = %v / %d, want plain exit 7", err, CodeOf(res, err))
	}
	if res.Output != "stage=dev args=--flag\n" {
		t.Errorf("output = %q", res.Output)
	}
	if !strings.HasPrefix(out.String(), "$ STAGE=dev ") {
		t.Errorf("echo = %q", out.String())
	}
}

func TestExecRunner_VirtualScriptSyntaxError(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "if then fi (\n")
	r, _ := newTestRunner()
	r.VirtualShell = true

	_, err := r.Run(context.Background(), ScriptCall(script))
	if err == nil || IsExitOnly(err) {
		t.Fatalf("expected a parse failure with cause, got %v", err)
	}
}
