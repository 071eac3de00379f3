package breakpointx_test

import (
	"errors"
	"testing"

	. "github.com/comalice/breakpointx"
	"github.com/comalice/breakpointx/testutil"
	"github.com/comalice/breakpointx/viewport"
)

func narrowAndWide(h *testutil.Harness, rec *testutil.Recorder) (*Breakpoint, *Breakpoint) {
	b1 := rec.Attach(&Breakpoint{Name: "b1", Condition: viewport.MaxWidth(h.Viewport, 768)})
	b2 := rec.Attach(&Breakpoint{Name: "b2", Condition: viewport.MinWidth(h.Viewport, 768)})
	return b1, b2
}

func TestRegisterEntersImmediately(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)

	if err := h.Registry.Register(b1); err != nil {
		t.Fatal(err)
	}

	want := []string{"b1:first_enter", "b1:enter"}
	assertEvents(t, rec.Events(), want)
	if !b1.IsActive() {
		t.Error("expected b1 active after register")
	}
	if b1.ID() == "" {
		t.Error("expected ID assigned on register")
	}
}

func TestRegisterInactiveFiresNothing(t *testing.T) {
	h := testutil.NewHarness(900, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)

	if err := h.Registry.Register(b1); err != nil {
		t.Fatal(err)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("expected no hooks, got %v", rec.Events())
	}
	if b1.IsActive() {
		t.Error("expected b1 inactive")
	}
}

// Walks the five documented scenarios in order.
func TestScenarios(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, b2 := narrowAndWide(h, rec)

	// 1: narrow at registration.
	h.Registry.Register(b1)
	assertEvents(t, rec.Events(), []string{"b1:first_enter", "b1:enter"})
	rec.Reset()

	// 2: resize wide exits, resize back re-enters without first_enter.
	h.Width(900)
	assertEvents(t, rec.Events(), []string{"b1:exit"})
	if b1.IsActive() {
		t.Error("b1 should be inactive at 900")
	}
	rec.Reset()

	// 3: register wide breakpoint while wide.
	h.Registry.Register(b2)
	assertEvents(t, rec.Events(), []string{"b2:first_enter", "b2:enter"})
	list := h.Registry.ListAll()
	if len(list) != 2 || list[0] != b1 || list[1] != b2 {
		t.Fatalf("expected [b1 b2], got %v", list)
	}
	if b1.IsActive() || !b2.IsActive() {
		t.Errorf("expected b1 inactive and b2 active, got %v %v", b1.IsActive(), b2.IsActive())
	}
	rec.Reset()

	// 4: resize narrow, exit of active b2 precedes enter of b1.
	h.Width(500)
	assertEvents(t, rec.Events(), []string{"b2:exit", "b1:enter"})
	rec.Reset()

	// 5: unregistered breakpoints are not evaluated.
	h.Registry.Unregister(b1)
	h.Width(900)
	h.Width(500)
	for _, e := range rec.Events() {
		if e == "b1:enter" || e == "b1:exit" {
			t.Errorf("b1 hook fired after unregister: %v", rec.Events())
		}
	}
	assertEvents(t, rec.Events(), []string{"b2:enter", "b2:exit"})
}

func TestExclusiveBreakpointsNeverBothActive(t *testing.T) {
	h := testutil.NewHarness(900, 400)
	var overlaps int
	var b1, b2 *Breakpoint
	check := func(*Breakpoint) error {
		if b1.IsActive() && b2.IsActive() {
			overlaps++
		}
		return nil
	}
	b1 = &Breakpoint{Name: "narrow", Condition: viewport.MaxWidth(h.Viewport, 768), Enter: check, Exit: check}
	b2 = &Breakpoint{Name: "wide", Condition: viewport.MinWidth(h.Viewport, 768), Enter: check, Exit: check}
	h.Registry.Register(b1)
	h.Registry.Register(b2)

	for _, w := range []int{500, 900, 300, 1200, 767, 768} {
		h.Width(w)
		if b1.IsActive() == b2.IsActive() {
			t.Errorf("at %d: narrow=%v wide=%v", w, b1.IsActive(), b2.IsActive())
		}
	}
	if overlaps != 0 {
		t.Errorf("observed %d overlapping states from inside hooks", overlaps)
	}
}

func TestFirstEnterOnce(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)
	h.Registry.Register(b1)

	for i := 0; i < 5; i++ {
		h.Width(900)
		h.Width(500)
	}
	if n := rec.Count("b1:first_enter"); n != 1 {
		t.Errorf("expected first_enter once, got %d", n)
	}
	if n := rec.Count("b1:enter"); n != 6 {
		t.Errorf("expected enter 6 times, got %d", n)
	}
	if n := rec.Count("b1:exit"); n != 5 {
		t.Errorf("expected exit 5 times, got %d", n)
	}
}

func TestFirstEnterNotRefiredOnReregister(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)

	h.Registry.Register(b1)
	h.Width(900)
	h.Registry.Unregister(b1)
	h.Width(500)
	h.Registry.Register(b1)

	if n := rec.Count("b1:first_enter"); n != 1 {
		t.Errorf("expected first_enter once across registrations, got %d", n)
	}
	if n := rec.Count("b1:enter"); n != 2 {
		t.Errorf("expected enter twice, got %d", n)
	}
}

func TestFirstEnterWaitsForFirstTrue(t *testing.T) {
	h := testutil.NewHarness(900, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)
	h.Registry.Register(b1)

	h.Width(950)
	if rec.Count("b1:first_enter") != 0 {
		t.Error("first_enter fired while condition was false")
	}
	h.Width(400)
	assertEvents(t, rec.Events(), []string{"b1:first_enter", "b1:enter"})
}

func TestTransitionOnly(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)
	h.Registry.Register(b1)
	rec.Reset()

	for _, w := range []int{400, 300, 767} {
		h.Width(w)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("expected no hooks while condition stays true, got %v", rec.Events())
	}

	h.Width(800)
	h.Width(1000)
	assertEvents(t, rec.Events(), []string{"b1:exit"})
}

func TestCheckAllOrdersActiveFirst(t *testing.T) {
	reg := New(WithErrorHandler(func(error) {}))
	var order []string
	cond := func(name string, v *bool) Condition {
		return func() bool {
			order = append(order, name)
			return *v
		}
	}
	aOn, bOn, cOn := false, true, false
	a := &Breakpoint{Name: "a", Condition: cond("a", &aOn)}
	b := &Breakpoint{Name: "b", Condition: cond("b", &bOn)}
	c := &Breakpoint{Name: "c", Condition: cond("c", &cOn)}
	reg.Register(a)
	reg.Register(b)
	reg.Register(c)
	order = nil

	if err := reg.CheckAll(); err != nil {
		t.Fatal(err)
	}
	assertEvents(t, order, []string{"b", "a", "c"})
}

func TestCheckIdempotent(t *testing.T) {
	h := testutil.NewHarness(900, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)
	h.Registry.Register(b1)

	h.Viewport.Set(500, 400)
	if err := h.Registry.Check(b1); err != nil {
		t.Fatal(err)
	}
	n := len(rec.Events())
	if err := h.Registry.Check(b1); err != nil {
		t.Fatal(err)
	}
	if len(rec.Events()) != n {
		t.Errorf("second check fired hooks: %v", rec.Events()[n:])
	}
	assertEvents(t, rec.Events(), []string{"b1:first_enter", "b1:enter"})
}

func TestCheckWithoutSourceEvent(t *testing.T) {
	loggedIn := false
	reg := New(WithErrorHandler(func(error) {}))
	var entered int
	b := &Breakpoint{
		Condition: func() bool { return loggedIn },
		Enter:     func(*Breakpoint) error { entered++; return nil },
	}
	reg.Register(b)
	loggedIn = true
	if entered != 0 {
		t.Fatal("enter fired before check")
	}
	reg.Check(b)
	if entered != 1 {
		t.Errorf("expected enter after manual check, got %d", entered)
	}
}

func TestUnregisterAllOccurrences(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, b2 := narrowAndWide(h, rec)

	h.Registry.Register(b1)
	h.Registry.Register(b2)
	h.Registry.Register(b1)
	h.Registry.Register(b1)
	if n := len(h.Registry.ListAll()); n != 4 {
		t.Fatalf("expected 4 entries, got %d", n)
	}

	h.Registry.Unregister(b1)
	list := h.Registry.ListAll()
	if len(list) != 1 || list[0] != b2 {
		t.Errorf("expected only b2 left, got %v", list)
	}

	h.Registry.Unregister(b1)
	h.Registry.Unregister(&Breakpoint{Name: "stranger"})
	if n := len(h.Registry.ListAll()); n != 1 {
		t.Errorf("no-op unregister changed registry: %d entries", n)
	}
}

func TestIdentityByPointer(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	cond := viewport.MaxWidth(h.Viewport, 768)
	x := &Breakpoint{Name: "same", Condition: cond}
	y := &Breakpoint{Name: "same", Condition: cond}
	h.Registry.Register(x)
	h.Registry.Register(y)

	h.Registry.Unregister(x)
	list := h.Registry.ListAll()
	if len(list) != 1 || list[0] != y {
		t.Errorf("expected y to survive removal of x, got %v", list)
	}
	if x.ID() == y.ID() {
		t.Error("distinct breakpoints should get distinct IDs")
	}
}

func TestListAllIsCopy(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, b2 := narrowAndWide(h, rec)
	h.Registry.Register(b1)

	list := h.Registry.ListAll()
	list[0] = b2
	if h.Registry.ListAll()[0] != b1 {
		t.Error("modifying ListAll result changed the registry")
	}
}

func TestDuplicateRegistrationEvaluatedOncePerFlip(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	rec := testutil.NewRecorder()
	b1, _ := narrowAndWide(h, rec)
	h.Registry.Register(b1)
	h.Registry.Register(b1)

	h.Width(900)
	h.Width(500)
	assertEvents(t, rec.Events(), []string{"b1:first_enter", "b1:enter", "b1:exit", "b1:enter"})
}

func TestNilConditionErrors(t *testing.T) {
	h := testutil.NewHarness(500, 400)
	bad := &Breakpoint{Name: "bad"}

	err := h.Registry.Register(bad)
	if !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
	if n := len(h.Registry.ListAll()); n != 1 {
		t.Errorf("malformed breakpoint should still be registered, got %d entries", n)
	}
	if err := h.Registry.Check(bad); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("expected ErrInvalidCondition from Check, got %v", err)
	}
	if err := h.Registry.CheckAll(); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("expected ErrInvalidCondition from CheckAll, got %v", err)
	}

	h.Source.Trigger()
	if len(h.Errors) != 1 || !errors.Is(h.Errors[0], ErrInvalidCondition) {
		t.Errorf("expected source-driven pass to report ErrInvalidCondition, got %v", h.Errors)
	}
}

func TestConditionPanicPropagates(t *testing.T) {
	reg := New(WithErrorHandler(func(error) {}))
	b := &Breakpoint{Condition: func() bool { panic("bad condition") }}

	defer func() {
		if r := recover(); r != "bad condition" {
			t.Errorf("expected condition panic to propagate, got %v", r)
		}
		// The latch is released so the breakpoint can be checked again.
		b.Condition = func() bool { return false }
		if err := reg.Check(b); err != nil {
			t.Errorf("unexpected error after recovery: %v", err)
		}
	}()
	reg.Register(b)
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
