package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls    []string
	lastArgs []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Learn(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "learn")
	f.lastArgs = args
	return nil
}
func (f *fakeExec) Checkin(ctx context.Context) error {
	f.calls = append(f.calls, "checkin")
	return nil
}
func (f *fakeExec) Stats(ctx context.Context) error {
	f.calls = append(f.calls, "stats")
	return nil
}
func (f *fakeExec) Say(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "say")
	f.lastArgs = args
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) {}
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"learn A",
		"checkin",
		"stats",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "learn", "checkin", "stats"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_PassesCommandArgs(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("say B b.webm\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.lastArgs) != 2 || exec.lastArgs[0] != "B" || exec.lastArgs[1] != "b.webm" {
		t.Fatalf("unexpected args: %v", exec.lastArgs)
	}
}

func TestRunREPL_ShortAlias(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("l\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("frobnicate\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("checkin\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "checkin" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
