package input

import (
	"strconv"
	"strings"
)

// key is one decoded keystroke.
type key struct {
	kind   Kind
	phase  Phase
	repeat bool
	legacy bool // No release will be reported for this key
}

// Kitty keyboard protocol modifier bit and event types.
const (
	modCtrl = 4

	kittyPress   = 1
	kittyRepeat  = 2
	kittyRelease = 3
)

// decoder splits a byte stream into keys. Escape sequences cut short at the
// end of a read are kept until the next one.
type decoder struct {
	pending []byte
	kitty   bool // The terminal has reported kitty event types
}

// decode consumes buf and returns the keys found. A lone ESC at the end of
// the input is the Escape key.
func (d *decoder) decode(buf []byte) []key {
	data := append(d.pending, buf...)
	d.pending = nil

	var keys []key
	for i := 0; i < len(data); {
		b := data[i]
		if b != '\x1b' {
			if k, ok := legacyKey(b); ok {
				keys = append(keys, k)
			}
			i++
			continue
		}

		if i+1 == len(data) {
			keys = append(keys, key{kind: Back, legacy: true})
			i++
			continue
		}
		if data[i+1] != '[' && data[i+1] != 'O' {
			// ESC followed by something else: Alt+key or a bare Escape.
			keys = append(keys, key{kind: Back, legacy: true})
			i++
			continue
		}

		end := csiEnd(data, i+2)
		if end < 0 {
			d.pending = append([]byte(nil), data[i:]...)
			break
		}
		if k, ok := d.csiKey(data[i+1], string(data[i+2:end]), data[end]); ok {
			keys = append(keys, k)
		}
		i = end + 1
	}
	return keys
}

// csiEnd returns the index of the final byte of a control sequence whose
// parameters start at from, or -1 if the sequence is incomplete.
func csiEnd(data []byte, from int) int {
	for j := from; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			return j
		}
	}
	return -1
}

func legacyKey(b byte) (key, bool) {
	var k Kind
	switch b {
	case 'a', 'A':
		k = MoveLeft
	case 'd', 'D':
		k = MoveRight
	case 'w', 'W', ' ':
		k = Shoot
	case 'p', 'P':
		k = Pause
	case 'r', 'R':
		k = Restart
	case 'q', 'Q', 0x03:
		k = Quit
	case '\r', '\n':
		k = Confirm
	default:
		return key{}, false
	}
	return key{kind: k, legacy: true}, true
}

// csiKey decodes "ESC [ params final" (and SS3 "ESC O final" arrows).
// Kitty omits the event type for plain presses, so once any kitty report has
// been seen every sequence is treated as one.
func (d *decoder) csiKey(intro byte, params string, final byte) (key, bool) {
	code, mods, event := parseParams(params)
	if event != 0 || (final == 'u' && intro == '[') {
		d.kitty = true
	}
	k := key{phase: Press, legacy: !d.kitty}
	switch event {
	case kittyRepeat:
		k.repeat = true
	case kittyRelease:
		k.phase = Release
	}

	switch final {
	case 'A':
		k.kind = Shoot
	case 'C':
		k.kind = MoveRight
	case 'D':
		k.kind = MoveLeft
	case 'u':
		if intro != '[' {
			return key{}, false
		}
		if mods&modCtrl != 0 && (code == 'c' || code == 'C') {
			k.kind = Quit
			return k, k.phase == Press
		}
		if code == 27 {
			k.kind = Back
			break
		}
		if code > 0xff {
			return key{}, false
		}
		lk, ok := legacyKey(byte(code))
		if !ok {
			return key{}, false
		}
		k.kind = lk.kind
	default:
		return key{}, false
	}
	return k, true
}

// parseParams reads "code;mods:event". Missing fields are 0; mods is returned
// as the modifier bit set (the wire value minus one).
func parseParams(params string) (code, mods, event int) {
	fields := strings.Split(params, ";")
	if len(fields) > 0 {
		first, _, _ := strings.Cut(fields[0], ":")
		code, _ = strconv.Atoi(first)
	}
	if len(fields) > 1 {
		m, e, hasEvent := strings.Cut(fields[1], ":")
		if v, err := strconv.Atoi(m); err == nil && v > 0 {
			mods = v - 1
		}
		if hasEvent {
			event, _ = strconv.Atoi(e)
		}
	}
	return code, mods, event
}
