package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Level
	}{
		{"off", LevelOff},
		{"PHASE", LevelPhase},
		{" detail ", LevelDetail},
		{"debug", LevelDebug},
	} {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase must not emit file scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeLiteral) {
		t.Error("detail must emit file scope but not literal scope")
	}
	if !LevelDebug.ShouldEmit(ScopeLiteral) {
		t.Error("debug must emit literal scope")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopePass, "lint")
	_, file := Start(ctx, ScopeFile, "file:a.php")
	file.WithExtra("literals", "2").End("ok")
	_, lit := Start(ctx, ScopeLiteral, "literal")
	lit.End("")
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.php" || ev.Extra["literals"] != "2" || ev.ParentID != run.ID() {
		t.Errorf("unexpected file end event: %+v", ev)
	}
}

func TestRingTracerAtErrorLevelKeepsEverything(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		Begin(ring, ScopeLiteral, name, 0).End("")
	}
	snap := ring.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected ring capacity 2, got %d", len(snap))
	}
	if snap[0].Name != "c" || snap[0].Kind != KindSpanBegin || snap[1].Kind != KindSpanEnd {
		t.Errorf("unexpected snapshot order: %+v", snap)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "literal c") {
		t.Errorf("dump missing event:\n%s", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("expected disabled tracer, got %v %v", tr, err)
	}
	if sp := Begin(tr, ScopeDriver, "x", 0); sp.ID() != 0 {
		t.Error("nop tracer must not allocate span ids")
	}
}

func TestRingLookup(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Error("both mode must contain a ring tracer")
	}
}
