package log

import (
	"bytes"
	"strings"
	"testing"
)

var (
	ash  = Actor{Seat: 0, Name: "Ash"}
	gary = Actor{Seat: 1}
)

func TestMemoryLoggerSequences(t *testing.T) {
	l := NewMemoryLogger()
	if got := l.LastEvent(); got.Seq != 0 {
		t.Fatalf("empty logger LastEvent seq = %d, want 0", got.Seq)
	}

	l.Log(NewTurnEvent(1, ash))
	l.Log(NewDrawEvent(1, "Draw Phase", ash, "Pikachu"))
	l.Log(NewKnockoutEvent(1, "Main Phase", gary, "Squirtle"))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d seq = %d, want %d", i, e.Seq, i+1)
		}
	}

	since := l.EventsSince(1)
	if len(since) != 2 || since[0].Type != EventDraw {
		t.Errorf("EventsSince(1) = %v", since)
	}
	if got := l.EventsSince(3); got != nil {
		t.Errorf("EventsSince(3) = %v, want nil", got)
	}

	kos := l.EventsOfType(EventKnockout)
	if len(kos) != 1 || kos[0].Card != "Squirtle" {
		t.Errorf("EventsOfType(knockout) = %v", kos)
	}
	if l.LastEvent().Type != EventKnockout {
		t.Errorf("LastEvent type = %v", l.LastEvent().Type)
	}

	// Events hands out a copy.
	events[0].Details = "changed"
	if l.Events()[0].Details == "changed" {
		t.Error("Events returned the internal slice")
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewAttachEnergyEvent(2, "Main Phase", ash, "Electric Energy", "Pikachu"))
	l.Log(NewWinEvent(3, "Main Phase", gary, "all prizes taken"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Ash attaches Electric Energy to Pikachu") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "P2 wins! (all prizes taken)") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if len(l.Events()) != 2 {
		t.Errorf("TextLogger kept %d events, want 2", len(l.Events()))
	}
}

func TestFormatEventPadsPhase(t *testing.T) {
	got := FormatEvent(NewDamageEvent(4, "Main Phase", ash, "Squirtle", 40, 0, "(weakness)"))
	want := "T4  Main Phase    | Squirtle takes 40 damage (0 HP left) (weakness)"
	if got != want {
		t.Errorf("FormatEvent =\n%q\nwant\n%q", got, want)
	}

	all := FormatAll([]GameEvent{NewNoContestEvent(200, "End Phase", "turn limit")})
	if !strings.HasSuffix(all, "Battle ends without a winner (turn limit)\n") {
		t.Errorf("FormatAll = %q", all)
	}
}
