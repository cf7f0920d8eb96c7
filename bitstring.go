package asn1

/*
bitstring.go contains the BIT STRING decoder: the primitive wire shape,
constructed (CER/BER-segmented) reassembly via the shared walker in
constructed.go, and the NamedBitList "flags" accessor.

GetNamedBitListValue numbers bits in reverse of ASN.1 wire order within
each content byte, to match the conventional flags convention: named
bit 0 is the least significant bit of content byte 0, named bit 1 the
next, up through named bit 7 as the most significant bit of byte 0,
then named bit 8 as the least significant bit of byte 1, and so on.
Byte order is preserved; only the bit significance within a byte is
reversed relative to wire transmission order. This is deliberately not
the numbering BitString.Positive (bs.go) uses.
*/

import "golang.org/x/exp/constraints"

var bitStringUniversal = universalTag(TagBitString, false)

func bitStringExpect(expect []Tag) *Tag {
	if len(expect) > 0 {
		return &expect[0]
	}
	t := bitStringUniversal
	return &t
}

// readBitString decodes the next BIT STRING, whatever its wire shape,
// and advances the cursor. It returns the unused-bit count and the raw
// (unnormalized) payload bytes exactly as transmitted.
func (r *Reader) readBitString(exp *Tag) (unused int, raw []byte, err error) {
	f, err := r.peekFrame()
	if err != nil {
		return 0, nil, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return 0, nil, err
	}

	content, total, err := r.resolve(f)
	if err != nil {
		return 0, nil, err
	}

	if !f.tag.Constructed {
		if len(content) == 0 {
			return 0, nil, malformedf("BIT STRING is missing the unused-bits octet")
		}
		unused = int(content[0])
		if unused < 0 || unused > 7 {
			return 0, nil, malformedf("BIT STRING: invalid unused bits count ", unused)
		}
		raw = content[1:]
		if len(raw) == 0 && unused != 0 {
			return 0, nil, malformedf("BIT STRING: unused bit count must be 0 for empty content")
		}
		if err = checkTrailingBitsZero(raw, unused, r.rules); err != nil {
			return 0, nil, err
		}
		r.advance(total)
		return unused, raw, nil
	}

	if r.rules == DER {
		return 0, nil, malformedf("DER forbids constructed BIT STRING")
	}

	segments, err := r.flattenConstructed(content, TagBitString)
	if err != nil {
		return 0, nil, err
	}
	if len(segments) == 0 {
		return 0, nil, malformedf("constructed BIT STRING has no segments")
	}

	for i, s := range segments {
		if i < len(segments)-1 && s.unusedBits != 0 {
			return 0, nil, malformedf("BIT STRING: only the final segment may have a non-zero unused-bits count")
		}
	}

	if r.rules == CER {
		if err = validateSegmentSizes(segments, cerMaxSegmentSize); err != nil {
			return 0, nil, err
		}
	}

	scratch := rentScratch(sumSegmentBytes(segments))
	for _, s := range segments {
		*scratch = append(*scratch, s.content...)
	}
	full := append([]byte(nil), (*scratch)...)
	releaseScratch(scratch)
	unused = segments[len(segments)-1].unusedBits
	if err = checkTrailingBitsZero(full, unused, r.rules); err != nil {
		return 0, nil, err
	}

	r.advance(total)
	return unused, full, nil
}

func checkTrailingBitsZero(payload []byte, unused int, rules EncodingRules) error {
	if rules == BER || unused == 0 || len(payload) == 0 {
		return nil
	}
	last := payload[len(payload)-1]
	if last&byte((1<<uint(unused))-1) != 0 {
		return malformedf(rules, ": non-zero padding bits in BIT STRING")
	}
	return nil
}

// TryGetPrimitiveBitStringValue decodes the next BIT STRING only if it
// uses the primitive wire shape, advancing the cursor on success. If
// the value is constructed, it returns ok=false without consuming
// anything or raising an error - the caller may fall back to
// GetBitStringValue.
func (r *Reader) TryGetPrimitiveBitStringValue(expect ...Tag) (unused int, raw []byte, ok bool, err error) {
	exp := bitStringExpect(expect)
	f, err := r.peekFrame()
	if err != nil {
		return 0, nil, false, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return 0, nil, false, err
	}
	if f.tag.Constructed {
		return 0, nil, false, nil
	}

	unused, raw, err = r.readBitString(exp)
	if err != nil {
		return 0, nil, false, err
	}
	return unused, raw, true, nil
}

// GetBitStringValue decodes the next BIT STRING in either wire shape
// and advances the cursor, returning the unused-bit count and the raw
// payload bytes.
func (r *Reader) GetBitStringValue(expect ...Tag) (unused int, raw []byte, err error) {
	return r.readBitString(bitStringExpect(expect))
}

// TryCopyBitStringBytes decodes the next BIT STRING and copies its
// normalized payload (trailing unused bits masked to zero) into dst,
// advancing the cursor. ok is false if dst is too small; in that case
// nothing is consumed.
func (r *Reader) TryCopyBitStringBytes(dst []byte, expect ...Tag) (unused int, n int, ok bool, err error) {
	exp := bitStringExpect(expect)
	f, err := r.peekFrame()
	if err != nil {
		return 0, 0, false, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return 0, 0, false, err
	}

	save := r.buf
	unused, raw, err := r.readBitString(exp)
	if err != nil {
		r.buf = save
		return 0, 0, false, err
	}
	if len(raw) > len(dst) {
		r.buf = save
		return 0, 0, false, nil
	}

	n = copy(dst, raw)
	if unused != 0 && n > 0 {
		dst[n-1] &^= byte((1 << uint(unused)) - 1)
	}
	return unused, n, true, nil
}

// GetNamedBitListValue decodes the next BIT STRING as a NamedBitList
// and returns it as a bitmask of type T, with named-bit index N stored
// at T bit N. Named-bit numbering is the reverse of wire order within
// each content byte (see the file comment above); byte order itself is
// unchanged. Under CER/DER the final declared bit must be set (trailing
// named bits are not permitted to be trimmed away).
func GetNamedBitListValue[T constraints.Unsigned](r *Reader, expect ...Tag) (T, error) {
	save := r.buf
	unused, raw, err := r.readBitString(bitStringExpect(expect))
	if err != nil {
		return 0, err
	}

	bitLen := len(raw)*8 - unused
	if r.rules != BER && bitLen > 0 {
		lastBitPos := bitLen - 1
		byteIdx, bitIdx := lastBitPos/8, uint(lastBitPos%8)
		if raw[byteIdx]&(1<<(7-bitIdx)) == 0 {
			r.buf = save
			return 0, malformedf(r.rules, ": NamedBitList trailing zero bits must be trimmed")
		}
	}

	var out T
	for bit := 0; bit < bitLen && bit < 64; bit++ {
		byteIdx, bitIdx := bit/8, uint(bit%8)
		if raw[byteIdx]&(1<<(7-bitIdx)) != 0 {
			namedBit := byteIdx*8 + (7 - int(bitIdx))
			out |= T(1) << uint(namedBit)
		}
	}
	return out, nil
}
