// Package input maps discrete key presses to transform changes.
package input

// Key is a backend-neutral key identifier. Display backends translate their
// own key events into Keys.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyS
	KeyA
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZ
	KeyX
	KeyR
	KeyF
	KeyEscape
)

// keyNames match the key strings ultraviolet's KeyPressEvent.MatchString
// understands.
var keyNames = [...]string{
	KeyNone:   "",
	KeyW:      "w",
	KeyS:      "s",
	KeyA:      "a",
	KeyD:      "d",
	KeyQ:      "q",
	KeyE:      "e",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyZ:      "z",
	KeyX:      "x",
	KeyR:      "r",
	KeyF:      "f",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Keys returns every bindable key.
func Keys() []Key {
	keys := make([]Key, 0, len(keyNames)-1)
	for k := KeyW; int(k) < len(keyNames); k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey looks a key up by name.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n != "" && n == name {
			return Key(k), true
		}
	}
	return KeyNone, false
}
