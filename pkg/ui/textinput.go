package ui

// IsPrintableKey returns true if the key is a single printable character.
// The color search box appends only these.
func IsPrintableKey(key string) bool {
	r := []rune(key)
	return len(r) == 1 && r[0] >= 32 && r[0] != 127
}
