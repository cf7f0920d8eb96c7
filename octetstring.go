package asn1

/*
octetstring.go contains the OCTET STRING decoder: the primitive wire
shape (content is the value) and constructed reassembly via the shared
walker in constructed.go. Symmetric to bitstring.go, but without the
leading unused-bits octet.
*/

var octetStringUniversal = universalTag(TagOctetString, false)

func octetStringExpect(expect []Tag) *Tag {
	if len(expect) > 0 {
		return &expect[0]
	}
	t := octetStringUniversal
	return &t
}

// readOctetString decodes the next OCTET STRING, whatever its wire
// shape, and advances the cursor, returning the concatenated payload.
func (r *Reader) readOctetString(exp *Tag) (raw []byte, err error) {
	f, err := r.peekFrame()
	if err != nil {
		return nil, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return nil, err
	}

	content, total, err := r.resolve(f)
	if err != nil {
		return nil, err
	}

	if !f.tag.Constructed {
		r.advance(total)
		return content, nil
	}

	if r.rules == DER {
		return nil, malformedf("DER forbids constructed OCTET STRING")
	}

	segments, err := r.flattenConstructed(content, TagOctetString)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, malformedf("constructed OCTET STRING has no segments")
	}

	if r.rules == CER {
		if err = validateSegmentSizes(segments, cerMaxSegmentSize); err != nil {
			return nil, err
		}
	}

	scratch := rentScratch(sumSegmentBytes(segments))
	for _, s := range segments {
		*scratch = append(*scratch, s.content...)
	}
	full := append([]byte(nil), (*scratch)...)
	releaseScratch(scratch)

	r.advance(total)
	return full, nil
}

// TryGetPrimitiveOctetStringBytes decodes the next OCTET STRING only if
// it uses the primitive wire shape, advancing the cursor on success. If
// the value is constructed, it returns ok=false without consuming
// anything or raising an error - the caller may fall back to
// GetOctetStringValue.
func (r *Reader) TryGetPrimitiveOctetStringBytes(expect ...Tag) (raw []byte, ok bool, err error) {
	exp := octetStringExpect(expect)
	f, err := r.peekFrame()
	if err != nil {
		return nil, false, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return nil, false, err
	}
	if f.tag.Constructed {
		return nil, false, nil
	}

	raw, err = r.readOctetString(exp)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// GetOctetStringValue decodes the next OCTET STRING in either wire
// shape and advances the cursor, returning the concatenated payload.
func (r *Reader) GetOctetStringValue(expect ...Tag) ([]byte, error) {
	return r.readOctetString(octetStringExpect(expect))
}

// TryCopyOctetStringBytes decodes the next OCTET STRING and copies its
// payload into dst, advancing the cursor. ok is false if dst is too
// small; in that case nothing is consumed.
func (r *Reader) TryCopyOctetStringBytes(dst []byte, expect ...Tag) (n int, ok bool, err error) {
	exp := octetStringExpect(expect)
	f, err := r.peekFrame()
	if err != nil {
		return 0, false, err
	}
	if err = checkExpectedTag(*exp, f.tag); err != nil {
		return 0, false, err
	}

	save := r.buf
	raw, err := r.readOctetString(exp)
	if err != nil {
		r.buf = save
		return 0, false, err
	}
	if len(raw) > len(dst) {
		r.buf = save
		return 0, false, nil
	}

	n = copy(dst, raw)
	return n, true, nil
}
