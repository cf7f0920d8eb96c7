package asn1

/*
oid.go contains the OBJECT IDENTIFIER decoder: base-128 variable-length
sub-identifier decoding and the classic first-arc decomposition.
*/

import "math/big"

var oidUniversal = universalTag(TagOID, false)

// ReadObjectIdentifierAsString decodes the next OBJECT IDENTIFIER and
// returns its dotted-decimal string form, advancing the cursor.
func (r *Reader) ReadObjectIdentifierAsString(expect ...Tag) (string, error) {
	exp := &oidUniversal
	if len(expect) > 0 {
		exp = &expect[0]
	}

	save := r.buf
	tag, content, err := r.takeTLV(exp)
	if err != nil {
		return "", err
	}
	if tag.Constructed {
		r.buf = save
		return "", malformedf("OBJECT IDENTIFIER may not be constructed")
	}
	if len(content) == 0 {
		r.buf = save
		return "", malformedf("OBJECT IDENTIFIER content must not be empty")
	}

	subs, err := decodeSubIdentifiers(content)
	if err != nil {
		r.buf = save
		return "", err
	}

	arcs := expandFirstArcs(subs)

	b := newStrBuilder()
	for i, a := range arcs {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(a.String())
	}
	return b.String(), nil
}

// decodeSubIdentifiers reads every base-128 VLQ sub-identifier in
// content. Each sub-identifier's leading octet must not be 0x80 (that
// would encode a non-minimal, redundant leading zero group).
func decodeSubIdentifiers(content []byte) ([]*big.Int, error) {
	var subs []*big.Int
	i := 0
	for i < len(content) {
		if content[i] == 0x80 {
			return nil, malformedf("OBJECT IDENTIFIER: non-minimal sub-identifier encoding")
		}
		n := big.NewInt(0)
		for {
			if i >= len(content) {
				return nil, malformedf("OBJECT IDENTIFIER: truncated sub-identifier")
			}
			b := content[i]
			i++
			n.Lsh(n, 7).Or(n, big.NewInt(int64(b&0x7F)))
			if b&0x80 == 0 {
				break
			}
		}
		subs = append(subs, n)
	}
	return subs, nil
}

// expandFirstArcs decomposes the first sub-identifier into the
// conventional first two OID arcs: v<40 -> (0,v); v<80 -> (1,v-40);
// else -> (2,v-80).
func expandFirstArcs(subs []*big.Int) []*big.Int {
	forty := big.NewInt(40)
	eighty := big.NewInt(80)

	var first, second *big.Int
	switch {
	case subs[0].Cmp(forty) < 0:
		first, second = big.NewInt(0), new(big.Int).Set(subs[0])
	case subs[0].Cmp(eighty) < 0:
		first, second = big.NewInt(1), new(big.Int).Sub(subs[0], forty)
	default:
		first, second = big.NewInt(2), new(big.Int).Sub(subs[0], eighty)
	}

	arcs := make([]*big.Int, 0, len(subs)+1)
	arcs = append(arcs, first, second)
	arcs = append(arcs, subs[1:]...)
	return arcs
}
