package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfirmAcceptsYesAndNoInAnyCase(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" Yes \n": true,
		"n\n":     false,
		"No\n":    false,
	}
	for input, want := range cases {
		var out bytes.Buffer
		got, err := New(strings.NewReader(input), &out, false).Confirm(context.Background(), "Continue?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("Confirm(%q) = %v want %v", input, got, want)
		}
		if !strings.HasPrefix(out.String(), "Continue? (Y/N): ") {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}

func TestConfirmReasksOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	got, err := New(strings.NewReader("maybe\n\ny\n"), &out, false).Confirm(context.Background(), "Create backups?")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !got {
		t.Fatal("expected yes")
	}
	if n := strings.Count(out.String(), "Please enter Y or N"); n != 2 {
		t.Fatalf("expected two re-asks, got %d in %q", n, out.String())
	}
}

func TestConfirmEOFIsNo(t *testing.T) {
	var out bytes.Buffer
	got, err := New(strings.NewReader(""), &out, false).Confirm(context.Background(), "Continue?")
	if err != nil || got {
		t.Fatalf("Confirm on EOF = %v, %v", got, err)
	}
}

func TestSequentialQuestionsShareInput(t *testing.T) {
	p := New(strings.NewReader("y\nn\n"), io.Discard, false)
	first, _ := p.Confirm(context.Background(), "one")
	second, _ := p.Confirm(context.Background(), "two")
	if !first || second {
		t.Fatalf("answers = %v, %v", first, second)
	}
}

func TestConfirmCancellation(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := New(reader, io.Discard, true)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := p.Confirm(ctx, "Continue?"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		p.Pause(context.Background())
		close(done)
	}()
	if _, err := writer.Write([]byte("\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pause did not receive the line after a cancelled question")
	}
}

func TestPauseNonInteractiveReturnsImmediately(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader(""), &out, false).Pause(context.Background())
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPauseInteractivePrintsMessage(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader("\n"), &out, true).Pause(context.Background())
	if out.String() != PauseMessage {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPauseEndsWhenContextIsCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := New(reader, io.Discard, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Pause(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pause ignored the cancelled context")
	}
}

func TestPauseAfterInterruptWaitsForEnter(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()
	p := New(reader, io.Discard, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		p.Pause(ctx)
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("pause returned before Enter after an interrupted run")
	case <-time.After(50 * time.Millisecond):
	}
	if _, err := writer.Write([]byte("\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pause did not return after Enter")
	}
}
