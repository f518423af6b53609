package channel

import "testing"

func TestGetOrCreateIsBijective(t *testing.T) {
	r := NewRegistry()
	a := r.GetOrCreate("Audio")
	b := r.GetOrCreate("Physics")
	again := r.GetOrCreate("  Audio ")

	if a.ID == None || b.ID == None {
		t.Fatalf("expected non-zero ids, got %d and %d", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("distinct names share id %d", a.ID)
	}
	if again.ID != a.ID {
		t.Errorf("same name got new id: %d != %d", again.ID, a.ID)
	}
	got, ok := r.ByID(b.ID)
	if !ok || got.Name != "Physics" {
		t.Errorf("ByID(%d) = %+v, %v", b.ID, got, ok)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestEmptyNameIsNone(t *testing.T) {
	r := NewRegistry()
	if ch := r.GetOrCreate("   "); !ch.IsNone() {
		t.Errorf("blank name registered as %+v", ch)
	}
	if r.Len() != 0 {
		t.Errorf("blank name should not register, Len() = %d", r.Len())
	}
}

func TestNamesAreNFCNormalised(t *testing.T) {
	r := NewRegistry()
	composed := r.GetOrCreate("Caf\u00e9")
	decomposed := r.GetOrCreate("Cafe\u0301")
	if composed.ID != decomposed.ID {
		t.Errorf("NFC forms should share an id: %d vs %d", composed.ID, decomposed.ID)
	}
}

func TestUnknownIDActsAsNoChannel(t *testing.T) {
	r := NewRegistry()
	r.SetAllEnabledByDefault(false)
	if !r.IsEnabled(None) {
		t.Error("IsEnabled(None) should be true")
	}
	if !r.IsEnabled(ID(42)) {
		t.Error("IsEnabled(unknown) should be true")
	}
	if ch, ok := r.ByID(42); ok || !ch.IsNone() {
		t.Errorf("ByID(unknown) = %+v, %v", ch, ok)
	}
}

func TestEnableDisableIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Disable("Audio")
	r.Disable("Audio")
	a, ok := r.Lookup("Audio")
	if !ok {
		t.Fatal("Disable should create the channel")
	}
	if r.IsEnabled(a.ID) {
		t.Error("Audio should be disabled")
	}
	r.Enable("Audio")
	r.Enable("Audio")
	if !r.IsEnabled(a.ID) {
		t.Error("Audio should be enabled")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestDefaultStateFollowsRegistryDefault(t *testing.T) {
	r := NewRegistry()
	a := r.GetOrCreate("Audio")
	r.Enable("Forced")
	forced, _ := r.Lookup("Forced")

	r.SetAllEnabledByDefault(false)
	if r.IsEnabled(a.ID) {
		t.Error("default-state channel should follow the registry default")
	}
	if !r.IsEnabled(forced.ID) {
		t.Error("forced channel must ignore the registry default")
	}
	if r.IsNameEnabled("Unregistered") {
		t.Error("unregistered name should resolve against the default")
	}
}

func TestIsEitherEnabled(t *testing.T) {
	r := NewRegistry()
	r.Enable("On")
	r.Disable("Off")
	on, _ := r.Lookup("On")
	off, _ := r.Lookup("Off")

	tests := []struct {
		name   string
		a, b   ID
		expect bool
	}{
		{"none none", None, None, true},
		{"on off", on.ID, off.ID, true},
		{"off on", off.ID, on.ID, true},
		{"off off", off.ID, off.ID, false},
		{"off none", off.ID, None, false},
		{"none on", None, on.ID, true},
		{"unknown off", ID(99), off.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsEitherEnabled(tt.a, tt.b); got != tt.expect {
				t.Errorf("IsEitherEnabled(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.expect)
			}
		})
	}
}

func TestColorRotation(t *testing.T) {
	r := NewRegistry()
	r.SetPalette([]string{"red", "blue"})
	got := []string{
		r.Color("a"),
		r.Color("b"),
		r.Color("c"),
	}
	want := []string{"red", "blue", "red"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("colour %d = %q, want %q", i, got[i], want[i])
		}
	}
	r.SetColor("a", "#123456")
	if c := r.Color("a"); c != "#123456" {
		t.Errorf("SetColor not applied: %q", c)
	}
}

func TestOnChangeFiresOnlyOnEffectiveChange(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.OnChange(func(*Registry) { calls++ })

	r.Enable("Audio")
	if calls != 0 {
		t.Fatalf("enabling an already-visible channel should not notify, calls=%d", calls)
	}
	r.Disable("Audio")
	if calls != 1 {
		t.Fatalf("calls=%d, want 1", calls)
	}
	r.Disable("Audio")
	if calls != 1 {
		t.Fatalf("repeat disable should not notify, calls=%d", calls)
	}
	r.GetOrCreate("Default")
	r.SetAllEnabledByDefault(false)
	if calls != 2 {
		t.Fatalf("default flip with default-state channel should notify, calls=%d", calls)
	}
}

func TestOnChangeNotifiesEveryObserver(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.OnChange(func(*Registry) { order = append(order, "first") })
	r.OnChange(func(got *Registry) {
		if got != r {
			t.Error("observer got another registry")
		}
		order = append(order, "second")
	})
	r.Disable("Physics")
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("observers ran as %v", order)
	}
}

func TestResetKeepsIdentities(t *testing.T) {
	r := NewRegistry()
	r.Disable("Audio")
	before, _ := r.Lookup("Audio")
	r.Reset()
	after, ok := r.Lookup("Audio")
	if !ok || after.ID != before.ID {
		t.Fatalf("Reset changed identity: %+v -> %+v", before, after)
	}
	if after.State != Default || !after.Enabled {
		t.Errorf("Reset should clear overrides, got %+v", after)
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"b", "c", "a"} {
		r.GetOrCreate(n)
	}
	names := r.Names()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Names() = %v", names)
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
		err  bool
	}{
		{"", Default, false},
		{"enabled", ForceEnabled, false},
		{"OFF", ForceDisabled, false},
		{"maybe", Default, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseState(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseState(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseState(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
