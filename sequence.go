package asn1

/*
sequence.go contains the SEQUENCE reader: it requires a constructed
universal tag 16 and returns a fresh sub-reader bounded to the content
octets, consuming the outer TLV (including, for indefinite length, the
trailing end-of-contents octets) from the parent.
*/

var sequenceUniversal = universalTag(TagSequence, true)

// ReadSequence decodes the next SEQUENCE and returns a sub-reader over
// its content, advancing the parent cursor past the whole value. The
// sub-reader shares the parent's EncodingRules. The parent must not be
// read again until the sub-reader is no longer needed, since the
// sub-reader's buffer is a strict subrange of the parent's.
func (r *Reader) ReadSequence(expect ...Tag) (*Reader, error) {
	exp := sequenceUniversal
	if len(expect) > 0 {
		exp = expect[0]
	}

	f, err := r.peekFrame()
	if err != nil {
		return nil, err
	}
	if err = checkExpectedTag(exp, f.tag); err != nil {
		return nil, err
	}
	if !f.tag.Constructed {
		return nil, malformedf("SEQUENCE must be constructed")
	}

	content, total, err := r.resolve(f)
	if err != nil {
		return nil, err
	}

	r.advance(total)
	return &Reader{buf: content, rules: r.rules}, nil
}
