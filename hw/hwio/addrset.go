package hwio

import "math/bits"

// AddrSpace is the size of the 6502 address space.
const AddrSpace = 0x10000

// addrSet is a set of bus addresses, one bit per address.
type addrSet [AddrSpace / 64]uint64

func (s *addrSet) has(addr uint16) bool {
	return s[addr>>6]&(1<<(addr&63)) != 0
}

// addRange adds the inclusive range [start, end], one word at a time.
func (s *addrSet) addRange(start, end uint16) {
	last := uint32(end)
	for a := uint32(start); a <= last; {
		w := a >> 6
		lo, hi := a&63, uint32(63)
		if last>>6 == w {
			hi = last & 63
		}
		s[w] |= ^uint64(0) >> (63 - (hi - lo)) << lo
		a = (w + 1) << 6
	}
}

func (s *addrSet) len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s *addrSet) clear() { *s = addrSet{} }
