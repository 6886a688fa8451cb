package input

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func readAll(t *testing.T, s string) []string {
	t.Helper()
	r := NewReader(strings.NewReader(s))
	var codes []string
	for {
		ev, err := r.Next()
		if err != nil {
			break
		}
		codes = append(codes, ev.Code)
	}
	return codes
}

func TestReader_Decode(t *testing.T) {
	got := readAll(t, "jA\x7f\r?\x1b[A\x1b[B\x03\x1b[3~")
	want := []string{"j", "A", "backspace", "enter", "?", "arrow_up", "arrow_down", "ctrl_c", "delete"}
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("codes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReader_LoneEscape(t *testing.T) {
	got := readAll(t, "\x1b")
	if len(got) != 1 || got[0] != "escape" {
		t.Errorf("codes = %v, want [escape]", got)
	}
}

func TestReadKeys_ForwardsUntilEOF(t *testing.T) {
	out := make(chan RawInput, 8)
	err := ReadKeys(context.Background(), NewReader(strings.NewReader("ab\x00")), out)
	if err != nil {
		t.Fatalf("ReadKeys() error = %v", err)
	}
	close(out)
	var codes []string
	for ev := range out {
		codes = append(codes, ev.Code)
	}
	if strings.Join(codes, ",") != "a,b" {
		t.Errorf("codes = %v, want [a b] (unknown bytes dropped)", codes)
	}
}

func TestReadKeys_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan RawInput)
	done := make(chan error, 1)
	go func() { done <- ReadKeys(ctx, NewReader(strings.NewReader("abc")), out) }()
	<-out
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ReadKeys() error = %v, want %v", err, context.Canceled)
		}
	case <-time.After(time.Second):
		t.Fatal("ReadKeys did not stop after cancel")
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Intent
	}{
		{"j", Intent{Action: ActionLetter, Rune: 'J'}},
		{"Z", Intent{Action: ActionLetter, Rune: 'Z'}},
		{"7", Intent{Action: ActionDigit, Rune: '7'}},
		{"backspace", Intent{Action: ActionBackspace}},
		{"enter", Intent{Action: ActionSubmit}},
		{"escape", Intent{Action: ActionBack}},
		{"?", Intent{Action: ActionHint}},
		{"arrow_down", Intent{Action: ActionMoveDown}},
		{"ctrl_c", Intent{Action: ActionQuit}},
		{"%", Intent{Action: ActionNone}},
	}
	for _, tt := range tests {
		if got := MapToIntent(DebouncedInput{Code: tt.code}); got != tt.want {
			t.Errorf("MapToIntent(%q) = %+v, want %+v", tt.code, got, tt.want)
		}
	}
}

func TestDebouncer(t *testing.T) {
	d := &Debouncer{Window: 100 * time.Millisecond}
	t0 := time.Now()
	accept := func(code string, at time.Duration) bool {
		_, ok := d.Accept(RawInput{Device: DeviceTerminal, Code: code, Timestamp: t0.Add(at)})
		return ok
	}
	if !accept("enter", 0) {
		t.Errorf("first enter dropped")
	}
	if accept("enter", 10*time.Millisecond) {
		t.Errorf("repeated enter within window accepted")
	}
	if !accept("z", 20*time.Millisecond) || !accept("z", 21*time.Millisecond) {
		t.Errorf("repeated letters must always pass")
	}
	if !accept("enter", 300*time.Millisecond) {
		t.Errorf("enter after window dropped")
	}
}

func TestSetSingleBinding_ReservesLetters(t *testing.T) {
	if SetSingleBinding(ActionHint, "h") {
		t.Errorf("binding a letter reported success")
	}
	if got := MapToIntent(DebouncedInput{Code: "h"}); got.Action != ActionLetter {
		t.Errorf("h = %v, want letter", ActionName(got.Action))
	}
	if got := MapToIntent(DebouncedInput{Code: "?"}); got.Action != ActionHint {
		t.Errorf("? lost its hint binding after a rejected rebind")
	}

	SetSingleBinding(ActionHint, "f2")
	defer SetSingleBinding(ActionHint, "?")
	if got := MapToIntent(DebouncedInput{Code: "f2"}); got.Action != ActionHint {
		t.Errorf("f2 = %v, want Hint", ActionName(got.Action))
	}
	if got := MapToIntent(DebouncedInput{Code: "?"}); got.Action != ActionNone {
		t.Errorf("? still bound after rebinding hint")
	}
}

func TestActionByName(t *testing.T) {
	for _, a := range []Action{ActionBackspace, ActionSubmit, ActionBack, ActionHint, ActionQuit} {
		got, ok := ActionByName(ActionName(a))
		if !ok || got != a {
			t.Errorf("ActionByName(%q) = %v, %v", ActionName(a), got, ok)
		}
	}
	if got, ok := ActionByName("hint"); !ok || got != ActionHint {
		t.Errorf("lower-case name not found")
	}
	if _, ok := ActionByName("teleport"); ok {
		t.Errorf("unknown name found")
	}
}
