package asn1

/*
setof.go contains the SET OF reader: like SEQUENCE, it requires a
constructed universal tag 17 and returns a sub-reader bounded to the
content octets, but additionally validates the DER/CER canonical
element ordering (X.690 §11.6) unless the caller opts out.
*/

var setOfUniversal = universalTag(TagSetOf, true)

// ReadSetOf decodes the next SET OF and returns a sub-reader over its
// content, advancing the parent cursor past the whole value. Under
// CER/DER the encoded elements must already be in canonical order; a
// violation fails the read before any content is returned. Passing
// skipSortValidation=true suppresses that check, for data known to
// come from a non-compliant writer. BER never validates ordering.
func (r *Reader) ReadSetOf(skipSortValidation bool, expect ...Tag) (*Reader, error) {
	exp := setOfUniversal
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
		return nil, malformedf("SET OF must be constructed")
	}

	content, total, err := r.resolve(f)
	if err != nil {
		return nil, err
	}

	if !skipSortValidation && r.rules != BER {
		if err = checkCanonicalOrder(content, r.rules); err != nil {
			return nil, err
		}
	}

	r.advance(total)
	return &Reader{buf: content, rules: r.rules}, nil
}

// checkCanonicalOrder walks content as a sequence of encoded TLVs and
// verifies each element's full encoding is lexicographically no
// greater than the one after it, per X.690 §11.6: pad the shorter
// operand conceptually with trailing zero bytes to the longer's
// length, compare byte by byte, and if still equal the longer operand
// is greater.
func checkCanonicalOrder(content []byte, rules EncodingRules) error {
	sub := &Reader{buf: content, rules: rules}

	var prev []byte
	for !sub.Empty() {
		elem, err := sub.GetEncodedValue()
		if err != nil {
			return err
		}
		if prev != nil && setOfElementCompare(prev, elem) > 0 {
			return malformedf("SET OF elements are not in canonical DER/CER order")
		}
		prev = elem
	}
	return nil
}

// setOfElementCompare implements the X.690 §11.6 comparison: shorter
// operands are conceptually zero-padded on the right to the longer's
// length before the byte-by-byte comparison, and the longer operand
// wins ties.
func setOfElementCompare(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
