// Package rawterm runs a game on a raw terminal that speaks the kitty
// keyboard protocol, which reports key releases as well as presses. Held
// state comes straight from the terminal instead of a press window.
package rawterm

import (
	"strconv"
	"strings"
)

// Escape sequences that switch the kitty keyboard protocol on and off.
// Flags 1|2|8: disambiguate, report event types, report all keys as codes.
const (
	enableKitty  = "\x1b[>11u"
	disableKitty = "\x1b[<u"
)

// EventKind is the kind of a key event.
type EventKind uint8

const (
	EventPress   EventKind = 1
	EventRepeat  EventKind = 2
	EventRelease EventKind = 3
)

// KeyEvent is one decoded key event. Name uses the same key names as the
// controls config ("left", "space", "a", "lshift", "ctrl+c").
type KeyEvent struct {
	Name   string
	Kind   EventKind
	Legacy bool // Plain byte; no release will follow
}

// Functional key codes from the kitty protocol.
var keyCodes = map[int]string{
	9:     "tab",
	13:    "enter",
	27:    "esc",
	32:    "space",
	127:   "backspace",
	57441: "lshift",
	57442: "lctrl",
	57443: "lalt",
	57447: "rshift",
	57448: "rctrl",
	57449: "ralt",
}

var arrowNames = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
}

const modCtrl = 4

// Decoder turns terminal input bytes into key events. Sequences split
// across reads are buffered until complete.
type Decoder struct {
	buf []byte
}

// Feed decodes as many events as the buffered input allows.
func (d *Decoder) Feed(p []byte) []KeyEvent {
	d.buf = append(d.buf, p...)

	var events []KeyEvent
	for len(d.buf) > 0 {
		ev, n, ok := decodeOne(d.buf)
		if n == 0 {
			break
		}
		d.buf = d.buf[n:]
		if ok {
			events = append(events, ev)
		}
	}
	if len(d.buf) == 0 {
		d.buf = nil
	}
	return events
}

// decodeOne decodes the event at the head of b. n is the number of bytes
// consumed, zero when the sequence is incomplete; ok is false for input
// that carries no key event.
func decodeOne(b []byte) (ev KeyEvent, n int, ok bool) {
	if b[0] != 0x1b {
		return legacyByte(b[0]), 1, true
	}
	if len(b) < 2 {
		return KeyEvent{}, 0, false
	}
	if b[1] != '[' {
		// Alt+key or a lone escape followed by more input.
		return KeyEvent{Name: "esc", Kind: EventPress}, 1, true
	}

	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return KeyEvent{}, 0, false
	}

	params := string(b[2:end])
	final := b[end]
	n = end + 1

	switch {
	case strings.HasPrefix(params, "?"):
		// Reply to a protocol query.
		return KeyEvent{}, n, false
	case final == 'u':
		ev, ok = csiU(params)
		return ev, n, ok
	case arrowNames[final] != "":
		_, kind := modsAndKind(params)
		return KeyEvent{Name: arrowNames[final], Kind: kind}, n, true
	}
	return KeyEvent{}, n, false
}

// csiU decodes "code[:alternates][;mods[:event]]".
func csiU(params string) (KeyEvent, bool) {
	codePart, rest, _ := strings.Cut(params, ";")
	codeStr, _, _ := strings.Cut(codePart, ":")
	code, err := strconv.Atoi(codeStr)
	if err != nil || code <= 0 {
		return KeyEvent{}, false
	}

	mods, kind := modsAndKind(rest)

	name, ok := keyCodes[code]
	if !ok {
		name = strings.ToLower(string(rune(code)))
	}
	if mods&modCtrl != 0 && len(name) == 1 {
		name = "ctrl+" + name
	}
	return KeyEvent{Name: name, Kind: kind}, true
}

// modsAndKind parses the "mods:event" field. Modifiers are sent plus one;
// a missing event means press.
func modsAndKind(field string) (mods int, kind EventKind) {
	kind = EventPress
	if _, after, found := strings.Cut(field, ";"); found {
		field = after
	}
	if field == "" {
		return 0, kind
	}
	modStr, evStr, hasEvent := strings.Cut(field, ":")
	if m, err := strconv.Atoi(modStr); err == nil && m > 0 {
		mods = m - 1
	}
	if hasEvent {
		if e, err := strconv.Atoi(evStr); err == nil && e >= 1 && e <= 3 {
			kind = EventKind(e)
		}
	}
	return mods, kind
}

// legacyByte decodes a byte sent outside any escape sequence, as terminals
// without the kitty protocol do.
func legacyByte(c byte) KeyEvent {
	name := string(rune(c))
	switch c {
	case 3:
		name = "ctrl+c"
	case '\r':
		name = "enter"
	case ' ':
		name = "space"
	case 127:
		name = "backspace"
	}
	return KeyEvent{Name: name, Kind: EventPress, Legacy: true}
}
