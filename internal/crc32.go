package internal

import (
	"hash/crc32"
	"math/bits"
)

// CRC32 computes the most significant bit first, unreflected, CRC-32 of
// the data written to it with an initial value of zero and no final xor,
// ie. the remainder of the data multiplied by x^32 when divided by
// 0x104c11db7. hash/crc32 only supports the reflected form and so each
// byte and the register are bit reversed around calls to it.
type CRC32 struct {
	val uint32
	buf [256]byte
}

// Write implements io.Writer.
func (c *CRC32) Write(buf []byte) (int, error) {
	total := len(buf)
	cval := ^bits.Reverse32(c.val)
	for len(buf) > 0 {
		n := copy(c.buf[:], buf)
		buf = buf[n:]
		for i, b := range c.buf[:n] {
			c.buf[byte(i)] = bits.Reverse8(b)
		}
		cval = crc32.Update(cval, crc32.IEEETable, c.buf[:n])
	}
	c.val = bits.Reverse32(^cval)
	return total, nil
}

// Sum32 returns the current value of the CRC.
func (c *CRC32) Sum32() uint32 {
	return c.val
}
