package asn1

/*
enumerated.go contains the ENUMERATED decoder. ENUMERATED shares the
INTEGER wire shape but carries universal tag number 10, and unlike
INTEGER is defined by X.680 to never be treated as a bit-flags set.
*/

import "golang.org/x/exp/constraints"

var enumeratedUniversal = universalTag(TagEnumerated, false)

// GetEnumeratedBytes returns the raw content octets of the next
// ENUMERATED value and advances the cursor.
func (r *Reader) GetEnumeratedBytes(expect ...Tag) ([]byte, error) {
	exp := enumeratedExpect(expect)
	save := r.buf
	tag, content, err := r.takeTLV(exp)
	if err != nil {
		return nil, err
	}
	if tag.Constructed {
		r.buf = save
		return nil, malformedf("ENUMERATED may not be constructed")
	}
	if err := checkIntegerRedundancy(content); err != nil {
		r.buf = save
		return nil, err
	}
	return content, nil
}

func enumeratedExpect(expect []Tag) *Tag {
	if len(expect) > 0 {
		return &expect[0]
	}
	t := enumeratedUniversal
	return &t
}

// GetEnumeratedValue decodes the next ENUMERATED value into T, a signed
// integer type wide enough to hold it, and advances the cursor. It
// fails if the value does not fit in T rather than silently truncating
// (the "flags" interpretation belongs to NamedBitList / BIT STRING,
// never to ENUMERATED).
func GetEnumeratedValue[T constraints.Signed](r *Reader, expect ...Tag) (T, error) {
	save := r.buf
	content, err := r.GetEnumeratedBytes(expect...)
	if err != nil {
		return 0, err
	}
	v := decodeTwosComplement(content)
	if !v.IsInt64() {
		r.buf = save
		return 0, malformedf("ENUMERATED value overflows requested type")
	}
	n := v.Int64()
	if int64(T(n)) != n {
		r.buf = save
		return 0, malformedf("ENUMERATED value overflows requested type")
	}
	return T(n), nil
}
