package depot

import (
	"iter"
	"math/bits"
	"strconv"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// MaxComponentTypes is the number of distinct component types a single World can register.
const MaxComponentTypes = 64

// Bits is a set of flags, one per registered component type.
//
// Only bitwise operations are defined; arithmetic operators do not apply to Bits.
type Bits struct {
	v uint64
}

// BitAt returns the Bits with only bit n set. n outside [0, MaxComponentTypes) yields the empty set.
func BitAt(n int) Bits {
	if n < 0 || n >= MaxComponentTypes {
		return Bits{}
	}
	return Bits{v: 1 << uint(n)}
}

// BitsOf wraps a raw flag word.
func BitsOf(v uint64) Bits {
	return Bits{v: v}
}

func (b Bits) Uint64() uint64 {
	return b.v
}

func (b Bits) Or(o Bits) Bits {
	return Bits{v: b.v | o.v}
}

func (b Bits) And(o Bits) Bits {
	return Bits{v: b.v & o.v}
}

func (b Bits) Xor(o Bits) Bits {
	return Bits{v: b.v ^ o.v}
}

func (b Bits) AndNot(o Bits) Bits {
	return Bits{v: b.v &^ o.v}
}

func (b Bits) Shl(n uint) Bits {
	return Bits{v: b.v << n}
}

func (b Bits) Shr(n uint) Bits {
	return Bits{v: b.v >> n}
}

func (b Bits) IsZero() bool {
	return b.v == 0
}

// Single reports whether exactly one bit is set.
func (b Bits) Single() bool {
	return b.v != 0 && b.v&(b.v-1) == 0
}

// Count returns the number of set bits.
func (b Bits) Count() int {
	return bits.OnesCount64(b.v)
}

// Contains reports whether every bit of o is also set in b.
func (b Bits) Contains(o Bits) bool {
	return b.v&o.v == o.v
}

// Index returns the position of the lowest set bit, or -1 for the empty set.
func (b Bits) Index() int {
	if b.v == 0 {
		return -1
	}
	return bits.TrailingZeros64(b.v)
}

// Bits yields each set bit as its own single-bit value, lowest first.
// The sequence may be ranged over any number of times.
func (b Bits) Bits() iter.Seq[Bits] {
	return func(yield func(Bits) bool) {
		for word := b.v; word != 0; word &= word - 1 {
			if !yield(Bits{v: word & -word}) {
				return
			}
		}
	}
}

// Split returns the set bits as single-bit values, lowest first.
func (b Bits) Split() []Bits {
	return iter_util.Collect(b.Bits())
}

// Mask converts b into a mask.Mask with the same bit positions marked.
func (b Bits) Mask() mask.Mask {
	var m mask.Mask
	for word := b.v; word != 0; word &= word - 1 {
		m.Mark(uint32(bits.TrailingZeros64(word)))
	}
	return m
}

func (b Bits) String() string {
	return "0b" + strconv.FormatUint(b.v, 2)
}
