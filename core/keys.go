package core

// Key codes use GLFW's numbering so platform code can pass them through
// unchanged.
const (
	KeySpace        = 32
	KeyA            = 65
	KeyD            = 68
	KeyE            = 69
	KeyQ            = 81
	KeyS            = 83
	KeyW            = 87
	KeyEscape       = 256
	KeyRight        = 262
	KeyLeft         = 263
	KeyDown         = 264
	KeyUp           = 265
	KeyLeftShift    = 340
	KeyLeftControl  = 341
	KeyLeftAlt      = 342
	KeyRightShift   = 344
	KeyRightControl = 345
	KeyRightAlt     = 346
)

var keyNames = map[string]int{
	"Space":        KeySpace,
	"Escape":       KeyEscape,
	"Up":           KeyUp,
	"Down":         KeyDown,
	"Left":         KeyLeft,
	"Right":        KeyRight,
	"LeftShift":    KeyLeftShift,
	"RightShift":   KeyRightShift,
	"LeftControl":  KeyLeftControl,
	"RightControl": KeyRightControl,
	"LeftAlt":      KeyLeftAlt,
	"RightAlt":     KeyRightAlt,
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[string(c)] = KeyA + int(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = '0' + int(c-'0')
	}
}

// KeyByName resolves a key name such as "W", "Space" or "LeftControl".
func KeyByName(name string) (int, bool) {
	key, ok := keyNames[name]
	return key, ok
}
