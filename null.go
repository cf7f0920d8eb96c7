package asn1

/*
null.go contains the NULL decoder.
*/

var nullUniversal = universalTag(TagNull, false)

// ReadNull decodes a NULL value (which carries no content) and
// advances the cursor.
func (r *Reader) ReadNull(expect ...Tag) error {
	exp := &nullUniversal
	if len(expect) > 0 {
		exp = &expect[0]
	}

	save := r.buf
	tag, content, err := r.takeTLV(exp)
	if err != nil {
		return err
	}
	if tag.Constructed {
		r.buf = save
		return malformedf("NULL may not be constructed")
	}
	if len(content) != 0 {
		r.buf = save
		return malformedf("NULL: content length must be 0, got ", len(content))
	}
	return nil
}
