// Key model shared by the display backends and the input state machine
package input

// KeyKind separates printable runes from the few special keys the viewer uses.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyRune
	KeyLeft
	KeyRight
	KeyEnter
)

// Key is a decoded key press.
type Key struct {
	Kind KeyKind
	Rune rune
}

func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

var (
	Left  = Key{Kind: KeyLeft}
	Right = Key{Kind: KeyRight}
	Enter = Key{Kind: KeyEnter}
)

// Raw arrow codes returned by highgui's waitKey differ per backend. The GTK
// keysyms and Cocoa codes are unambiguous. The GTK low-byte codes collide
// with letters: 81 is 'Q' and always quits, 83 is 'S' and moves right.
var (
	keysymLeft  = map[int]bool{65361: true, 2: true}
	keysymRight = map[int]bool{65363: true, 3: true}
)

const lowByteRight = 83

// DecodeHighGUI converts a waitKey result into a Key. -1 (no key) reports false.
func DecodeHighGUI(code int) (Key, bool) {
	if code < 0 {
		return Key{}, false
	}
	switch {
	case keysymLeft[code]:
		return Left, true
	case keysymRight[code]:
		return Right, true
	}

	b := code & 0xFF
	switch {
	case b == 13 || b == 10:
		return Enter, true
	case code == lowByteRight:
		return Right, true
	default:
		return Rune(rune(b)), true
	}
}
