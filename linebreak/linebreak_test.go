package linebreak

import (
	"testing"

	"github.com/digi-deity/textshape/fragment"
	"github.com/digi-deity/textshape/oracle"
)

func TestBreakSingleShortLine(t *testing.T) {
	f, err := fragment.Make("Hello world.", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}
	plan, err := Break(f, []float32{100}, DefaultCosts())
	if err != nil {
		t.Fatalf("Break: %v", err)
	}
	if plan.Lines() != 1 {
		t.Fatalf("Lines() = %d, want 1", plan.Lines())
	}
	if plan.Breaks[0] != 0 || plan.Breaks[1] != 2 {
		t.Errorf("Breaks = %v, want [0 2]", plan.Breaks)
	}
}

func TestBreakForcedNewlines(t *testing.T) {
	f, err := fragment.Make("A\n\nB", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}
	plan, err := Break(f, []float32{20}, DefaultCosts())
	if err != nil {
		t.Fatalf("Break: %v", err)
	}
	if plan.Lines() != 3 {
		t.Fatalf("Lines() = %d, want 3 (A / blank / B), breaks=%v", plan.Lines(), plan.Breaks)
	}
	want := []int32{0, 1, 2, 4}
	for i, w := range want {
		if plan.Breaks[i] != w {
			t.Errorf("Breaks = %v, want %v", plan.Breaks, want)
			break
		}
	}
	for k, forced := range plan.ForcedMask {
		if !forced {
			t.Errorf("ForcedMask[%d] = false, want true (every line ends in a forced break here)", k)
		}
	}
}

func TestBreakTabExpansionFitsOneLine(t *testing.T) {
	f, err := fragment.Make("\tA", oracle.NewMonospace(), fragment.WithTabWidth(2))
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}
	plan, err := Break(f, []float32{50}, DefaultCosts())
	if err != nil {
		t.Fatalf("Break: %v", err)
	}
	if plan.Lines() != 1 {
		t.Fatalf("Lines() = %d, want 1", plan.Lines())
	}
}

func TestBreakHyphenationForcedByWidth(t *testing.T) {
	// Two adjacent sub-spans of a single word expose a mid-word
	// hyphenation opportunity; a target width that cannot fit both
	// spans on one line must force a hyphenated break instead of an
	// overflow.
	splitter := func(text []rune) ([]fragment.Span, error) {
		return []fragment.Span{{Start: 0, End: 3}, {Start: 3, End: 6}}, nil
	}
	f, err := fragment.Make("abcdef", oracle.NewMonospace(), fragment.WithSplitter(splitter))
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}

	plan, err := Break(f, []float32{4}, DefaultCosts())
	if err != nil {
		t.Fatalf("Break: %v", err)
	}
	if plan.Lines() != 2 {
		t.Fatalf("Lines() = %d, want 2, breaks=%v", plan.Lines(), plan.Breaks)
	}
	if !plan.HyphenMask[0] {
		t.Errorf("HyphenMask[0] = false, want true (line 0 ends on the hyphenation point)")
	}
	if plan.HyphenMask[1] {
		t.Errorf("HyphenMask[1] = true, want false (line 1 ends on the forced terminal break)")
	}
}

func TestBreakRejectsEmptySchedule(t *testing.T) {
	f, err := fragment.Make("Hello world.", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}
	if _, err := Break(f, nil, DefaultCosts()); err == nil {
		t.Fatal("Break with empty schedule: want error, got nil")
	}
}

func TestBreakRejectsNonPositiveWidth(t *testing.T) {
	f, err := fragment.Make("Hello world.", oracle.NewMonospace())
	if err != nil {
		t.Fatalf("fragment.Make: %v", err)
	}
	if _, err := Break(f, []float32{0}, DefaultCosts()); err == nil {
		t.Fatal("Break with zero target width: want error, got nil")
	}
}
