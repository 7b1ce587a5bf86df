package inputxlate

import (
	"testing"
	"time"
)

var testPrefixKey = Key{Kind: KeyRune, Rune: 't', Control: true}

func TestParsePrefixKey(t *testing.T) {
	cases := map[string]Key{
		"ctrl+t": {Kind: KeyRune, Rune: 't', Control: true},
		"Ctrl+A": {Kind: KeyRune, Rune: 'a', Control: true},
		"x":      {Kind: KeyRune, Rune: 'x'},
		"":       DefaultPrefixKey,
		"bogus+": DefaultPrefixKey,
	}
	for spec, want := range cases {
		if got := ParsePrefixKey(spec); got != want {
			t.Fatalf("ParsePrefixKey(%q) = %+v, want %+v", spec, got, want)
		}
	}
}

// S5: prefix + digit selection.
func TestPrefixThenDigitSelectsByIndex(t *testing.T) {
	tr := New(testPrefixKey)
	if _, ok := tr.HandleKey(testPrefixKey); ok {
		t.Fatalf("prefix key alone should produce no action")
	}
	if tr.Mode() != ModePrefixWait {
		t.Fatalf("mode after prefix = %v, want PrefixWait", tr.Mode())
	}
	action, ok := tr.HandleKey(Key{Kind: KeyRune, Rune: '2'})
	if !ok || action.Kind != ActionSelectByIndex || action.Index != 1 {
		t.Fatalf("action = %+v ok=%v, want SelectByIndex(1)", action, ok)
	}
	if tr.Mode() != ModeNormal {
		t.Fatalf("mode after command key = %v, want Normal", tr.Mode())
	}
}

// S9: prefix-timeout preservation.
func TestPrefixTimeoutEmitsLiteralPrefixByte(t *testing.T) {
	tr := New(testPrefixKey)
	clock := time.Unix(0, 0)
	tr.now = func() time.Time { return clock }

	tr.HandleKey(testPrefixKey)
	if _, ok := tr.CheckTimeout(); ok {
		t.Fatalf("timeout should not fire immediately")
	}

	clock = clock.Add(1100 * time.Millisecond)
	action, ok := tr.CheckTimeout()
	if !ok {
		t.Fatalf("timeout should fire after >=1s")
	}
	if action.Kind != ActionWriteToActive || len(action.Bytes) != 1 || action.Bytes[0] != 0x14 {
		t.Fatalf("timeout action = %+v, want WriteToActive{0x14}", action)
	}
	if tr.Mode() != ModeNormal {
		t.Fatalf("mode after timeout = %v, want Normal", tr.Mode())
	}
}

func TestPrefixThenUnknownKeyCancels(t *testing.T) {
	tr := New(testPrefixKey)
	tr.HandleKey(testPrefixKey)
	action, ok := tr.HandleKey(Key{Kind: KeyRune, Rune: 'z'})
	if ok {
		t.Fatalf("unknown prefix follow-up should produce no action, got %+v", action)
	}
	if tr.Mode() != ModeNormal {
		t.Fatalf("mode after cancel = %v, want Normal", tr.Mode())
	}
}

func TestPrefixTwiceSendsLiteralByte(t *testing.T) {
	tr := New(testPrefixKey)
	tr.HandleKey(testPrefixKey)
	action, ok := tr.HandleKey(testPrefixKey)
	if !ok || action.Kind != ActionWriteToActive || action.Bytes[0] != 0x14 {
		t.Fatalf("double prefix = %+v ok=%v, want WriteToActive{0x14}", action, ok)
	}
}

func TestControlCharMapping(t *testing.T) {
	tr := New(testPrefixKey)
	action, ok := tr.HandleKey(Key{Kind: KeyRune, Rune: 'a', Control: true})
	if !ok || action.Bytes[0] != 0x01 {
		t.Fatalf("Ctrl+A = %+v, want byte 0x01", action)
	}
}

func TestArrowKeysRespectApplicationCursorKeys(t *testing.T) {
	tr := New(testPrefixKey)
	action, _ := tr.HandleKey(Key{Kind: KeyUp})
	if string(action.Bytes) != "\x1b[A" {
		t.Fatalf("Up (normal mode) = %q, want ESC [ A", action.Bytes)
	}

	tr.SetApplicationCursorKeys(true)
	action, _ = tr.HandleKey(Key{Kind: KeyUp})
	if string(action.Bytes) != "\x1bOA" {
		t.Fatalf("Up (application mode) = %q, want ESC O A", action.Bytes)
	}
}

func TestDeleteAlwaysUsesCSIForm(t *testing.T) {
	tr := New(testPrefixKey)
	tr.SetApplicationCursorKeys(true)
	action, _ := tr.HandleKey(Key{Kind: KeyDelete})
	if string(action.Bytes) != "\x1b[3~" {
		t.Fatalf("Delete = %q, want ESC [ 3 ~", action.Bytes)
	}
}
