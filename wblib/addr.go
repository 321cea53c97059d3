// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wblib

// Address translation is a pure bit rearrangement: no address value is
// created or dropped beyond the granularity-implied low bits.

// ByteToWord converts a byte-granular address to word granularity: the
// low-order byte-offset bits are dropped, the remaining bits shift down
// and the vacated high bits are zero filled.
//
func ByteToWord(addr uint64, addrBits, offsetBits int) uint64 {
	return (addr & maskBits(addrBits)) >> uint(offsetBits)
}

// WordToByte converts a word-granular address to byte granularity: the
// address shifts up and the vacated low-order bits are zero filled. Bits
// shifted beyond the address width are lost.
//
func WordToByte(addr uint64, addrBits, offsetBits int) uint64 {
	return (addr << uint(offsetBits)) & maskBits(addrBits)
}

func maskBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(n) - 1
}
