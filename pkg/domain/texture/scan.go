// Package texture discovers and resolves texture references embedded in model binaries.
package texture

// Scan projects buf onto printable ASCII. Bytes in [32,126] are kept, every
// other byte becomes a single space, so len(Scan(buf)) == len(buf).
func Scan(buf []byte) string {
	out := make([]byte, len(buf))
	for i, b := range buf {
		if b >= 32 && b <= 126 {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}
