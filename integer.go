package asn1

/*
integer.go contains the INTEGER decoder: the raw-content accessor, the
arbitrary-precision accessor, and the fixed-width signed/unsigned
accessors. The fixed-width accessors are one generic pair instantiated
per width instead of eight hand-written functions, the same pattern the
teacher uses its one real third-party dependency for.
*/

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

var integerUniversal = universalTag(TagInteger, false)

// GetIntegerBytes returns the raw two's-complement content octets of
// the next INTEGER, validated against the X.690 §8.3.2 redundancy rule,
// and advances the cursor.
func (r *Reader) GetIntegerBytes(expect ...Tag) ([]byte, error) {
	exp := integerExpect(expect)
	save := r.buf
	tag, content, err := r.takeTLV(exp)
	if err != nil {
		return nil, err
	}
	if tag.Constructed {
		r.buf = save
		return nil, malformedf("INTEGER may not be constructed")
	}
	if err := checkIntegerRedundancy(content); err != nil {
		r.buf = save
		return nil, err
	}
	return content, nil
}

// GetBigInteger decodes the next INTEGER as an arbitrary-precision
// value and advances the cursor.
func (r *Reader) GetBigInteger(expect ...Tag) (*big.Int, error) {
	content, err := r.GetIntegerBytes(expect...)
	if err != nil {
		return nil, err
	}
	return decodeTwosComplement(content), nil
}

func integerExpect(expect []Tag) *Tag {
	if len(expect) > 0 {
		return &expect[0]
	}
	t := integerUniversal
	return &t
}

// checkIntegerRedundancy enforces X.690 §8.3.2: the content must not
// begin with nine redundant bits (all-zero or all-one) across the
// first two octets.
func checkIntegerRedundancy(content []byte) error {
	if len(content) == 0 {
		return malformedf("INTEGER content must not be empty")
	}
	if len(content) >= 2 {
		if content[0] == 0x00 && content[1]&0x80 == 0 {
			return malformedf("INTEGER: redundant leading 0x00 octet")
		}
		if content[0] == 0xFF && content[1]&0x80 != 0 {
			return malformedf("INTEGER: redundant leading 0xFF octet")
		}
	}
	return nil
}

func decodeTwosComplement(content []byte) *big.Int {
	v := new(big.Int).SetBytes(content)
	if content[0]&0x80 != 0 {
		twoPow := new(big.Int).Lsh(big.NewInt(1), uint(len(content)*8))
		v.Sub(v, twoPow)
	}
	return v
}

// peekIntegerFrame resolves the next TLV's tag, content, and total
// consumed length without advancing the cursor, so overflow in a
// TryRead* accessor can decline to consume.
func (r *Reader) peekIntegerFrame(exp *Tag) (tag Tag, content []byte, total int, err error) {
	f, err := r.peekFrame()
	if err != nil {
		return Tag{}, nil, 0, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return Tag{}, nil, 0, err
	}
	content, total, err = r.resolve(f)
	if err != nil {
		return Tag{}, nil, 0, err
	}
	if f.tag.Constructed {
		return Tag{}, nil, 0, malformedf("INTEGER may not be constructed")
	}
	if err = checkIntegerRedundancy(content); err != nil {
		return Tag{}, nil, 0, err
	}
	return f.tag, content, total, nil
}

func readSigned[T constraints.Signed](r *Reader, bits uint, expect []Tag) (T, bool, error) {
	exp := integerExpect(expect)
	_, content, total, err := r.peekIntegerFrame(exp)
	if err != nil {
		return 0, false, err
	}

	v := decodeTwosComplement(content)
	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
	if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
		return 0, false, nil
	}

	r.advance(total)
	return T(v.Int64()), true, nil
}

func readUnsigned[T constraints.Unsigned](r *Reader, bits uint, expect []Tag) (T, bool, error) {
	exp := integerExpect(expect)
	_, content, total, err := r.peekIntegerFrame(exp)
	if err != nil {
		return 0, false, err
	}

	v := decodeTwosComplement(content)
	if v.Sign() < 0 {
		return 0, false, nil
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
	if v.Cmp(max) > 0 {
		return 0, false, nil
	}

	r.advance(total)
	return T(v.Uint64()), true, nil
}

// TryReadI8 decodes the next INTEGER into an int8, declining to advance
// the cursor and returning ok=false if the value does not fit.
func (r *Reader) TryReadI8(expect ...Tag) (int8, bool, error)  { return readSigned[int8](r, 8, expect) }
func (r *Reader) TryReadI16(expect ...Tag) (int16, bool, error) {
	return readSigned[int16](r, 16, expect)
}
func (r *Reader) TryReadI32(expect ...Tag) (int32, bool, error) {
	return readSigned[int32](r, 32, expect)
}
func (r *Reader) TryReadI64(expect ...Tag) (int64, bool, error) {
	return readSigned[int64](r, 64, expect)
}

// TryReadU8 decodes the next INTEGER into a uint8, declining to advance
// the cursor and returning ok=false if the value does not fit or is
// negative.
func (r *Reader) TryReadU8(expect ...Tag) (uint8, bool, error) {
	return readUnsigned[uint8](r, 8, expect)
}
func (r *Reader) TryReadU16(expect ...Tag) (uint16, bool, error) {
	return readUnsigned[uint16](r, 16, expect)
}
func (r *Reader) TryReadU32(expect ...Tag) (uint32, bool, error) {
	return readUnsigned[uint32](r, 32, expect)
}
func (r *Reader) TryReadU64(expect ...Tag) (uint64, bool, error) {
	return readUnsigned[uint64](r, 64, expect)
}
