package oto

// Int16BufferToLE appends buff to dst as 16-bit little-endian bytes and returns
// the extended slice.
func Int16BufferToLE(buff []int16, dst []byte) []byte {
	for _, v := range buff {
		dst = append(dst, byte(v), byte(uint16(v)>>8))
	}
	return dst
}
