package asn1

/*
charstring.go contains the character-string facade: one dispatch table
from universal tag number to a decoder that maps the OCTET
STRING-shaped wire bytes of BMPString, GeneralString, GraphicString,
IA5String, ISO646String/VisibleString, NumericString, PrintableString,
TeletexString/T61String, UniversalString, UTF8String and
VideotexString into a Unicode string. Every one of these types shares
the OCTET STRING wire shape (primitive content-is-value, or
BER/CER-segmented constructed); the reader validates that shape and
defers to the decoder for the character-set interpretation.

No library in the retrieved pack decodes T.61/Videotex 8-bit legacy
character sets or UTF-16/UTF-32 text; this file uses unicode/utf8 and
unicode/utf16 from the standard library for that, per DESIGN.md.

CharacterDecoders is exported: a caller may register a decoder for a
tag number this file does not cover, or replace one of the built-ins,
by assigning into the map directly.
*/

import (
	"unicode/utf16"
	"unicode/utf8"
)

// CharacterDecoder maps the raw OCTET STRING-shaped payload of one
// character string type to a Unicode string, failing on any byte
// sequence that isn't valid in that encoding.
type CharacterDecoder func(payload []byte) (string, error)

// CharacterDecoders is the module-level tag-number -> decoder table.
// It is exported so callers can register a decoder for a character
// string tag number this package does not already cover, or override
// one of the built-in entries.
var CharacterDecoders = map[int]CharacterDecoder{
	TagUTF8String:      decodeUTF8String,
	TagIA5String:       decodeASCIIString,
	TagNumericString:   decodeRestrictedString("0123456789 "),
	TagPrintableString: decodeRestrictedString("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 '()+,-./:=?"),
	TagVisibleString:   decodeLatin1String,
	TagGraphicString:   decodeLatin1String,
	TagGeneralString:   decodeLatin1String,
	TagT61String:       decodeLatin1String,
	TagVideotexString:  decodeLatin1String,
	TagBMPString:       decodeBMPString,
	TagUniversalString: decodeUniversalString,
}

// GetCharacterString decodes the next value, whose wire shape is the
// same as OCTET STRING, as the character-string type named by
// tagNumber and advances the cursor. Decode failure is all-or-nothing:
// on any invalid byte sequence the cursor is left unmodified and an
// error is returned, never a partial string.
func (r *Reader) GetCharacterString(tagNumber int, expect ...Tag) (string, error) {
	dec, ok := CharacterDecoders[tagNumber]
	if !ok {
		return "", invalidArgumentf("unrecognized character string tag number ", tagNumber)
	}

	exp := universalTag(tagNumber, false)
	if len(expect) > 0 {
		exp = expect[0]
	}

	save := r.buf
	raw, err := r.readOctetStringAs(&exp, tagNumber)
	if err != nil {
		return "", err
	}

	s, err := dec(raw)
	if err != nil {
		r.buf = save
		return "", err
	}
	return s, nil
}

// readOctetStringAs is readOctetString generalized to validate against
// the given character-string tag number rather than TagOctetString,
// since the wire-shape checks (primitive/constructed, CER segmenting)
// are identical but the expected universal tag number differs per
// character type.
func (r *Reader) readOctetStringAs(exp *Tag, tagNumber int) ([]byte, error) {
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
		return nil, malformedf(TagNames[tagNumber], ": DER forbids constructed encoding")
	}

	segments, err := r.flattenConstructed(content, tagNumber)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, malformedf(TagNames[tagNumber], ": constructed value has no segments")
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

// TryCopyCharacterString decodes the next character string and copies
// its Unicode text, UTF-8 encoded, into dst, advancing the cursor. ok
// is false if dst is too small; in that case nothing is consumed.
func (r *Reader) TryCopyCharacterString(tagNumber int, dst []byte, expect ...Tag) (n int, ok bool, err error) {
	save := r.buf
	s, err := r.GetCharacterString(tagNumber, expect...)
	if err != nil {
		return 0, false, err
	}
	if len(s) > len(dst) {
		r.buf = save
		return 0, false, nil
	}
	n = copy(dst, s)
	return n, true, nil
}

// TryCopyCharacterStringBytes decodes the next character string and
// copies its raw, undecoded wire payload into dst, advancing the
// cursor. ok is false if dst is too small; in that case nothing is
// consumed. Unlike TryCopyCharacterString, the character-set decoder is
// never invoked, so this also succeeds for payloads the decoder would
// reject.
func (r *Reader) TryCopyCharacterStringBytes(tagNumber int, dst []byte, expect ...Tag) (n int, ok bool, err error) {
	if _, ok := CharacterDecoders[tagNumber]; !ok {
		return 0, false, invalidArgumentf("unrecognized character string tag number ", tagNumber)
	}

	exp := universalTag(tagNumber, false)
	if len(expect) > 0 {
		exp = expect[0]
	}

	save := r.buf
	raw, err := r.readOctetStringAs(&exp, tagNumber)
	if err != nil {
		return 0, false, err
	}
	if len(raw) > len(dst) {
		r.buf = save
		return 0, false, nil
	}
	n = copy(dst, raw)
	return n, true, nil
}

func decodeUTF8String(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", malformedf("UTF8 STRING: invalid UTF-8 byte sequence")
	}
	return string(payload), nil
}

func decodeASCIIString(payload []byte) (string, error) {
	for _, b := range payload {
		if b > 0x7F {
			return "", malformedf("IA5 STRING: byte ", hexByte(b), " is outside the 7-bit ASCII range")
		}
	}
	return string(payload), nil
}

func decodeLatin1String(payload []byte) (string, error) {
	r := make([]rune, len(payload))
	for i, b := range payload {
		r[i] = rune(b)
	}
	return string(r), nil
}

func decodeRestrictedString(alphabet string) CharacterDecoder {
	allowed := make(map[byte]bool, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		allowed[alphabet[i]] = true
	}
	return func(payload []byte) (string, error) {
		for _, b := range payload {
			if !allowed[b] {
				return "", malformedf("character ", hexByte(b), " is outside the permitted alphabet")
			}
		}
		return string(payload), nil
	}
}

func decodeBMPString(payload []byte) (string, error) {
	if len(payload)%2 != 0 {
		return "", malformedf("BMP STRING: odd byte length ", len(payload))
	}
	units := make([]uint16, len(payload)/2)
	for i := range units {
		units[i] = uint16(payload[2*i])<<8 | uint16(payload[2*i+1])
	}
	return string(utf16.Decode(units)), nil
}

func decodeUniversalString(payload []byte) (string, error) {
	if len(payload)%4 != 0 {
		return "", malformedf("UNIVERSAL STRING: byte length ", len(payload), " is not a multiple of 4")
	}
	r := make([]rune, len(payload)/4)
	for i := range r {
		v := uint32(payload[4*i])<<24 | uint32(payload[4*i+1])<<16 | uint32(payload[4*i+2])<<8 | uint32(payload[4*i+3])
		if v > 0x10FFFF {
			return "", malformedf("UNIVERSAL STRING: code point out of range")
		}
		r[i] = rune(v)
	}
	return string(r), nil
}
