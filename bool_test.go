package asn1

import "testing"

func TestReadBooleanTrueFF(t *testing.T) {
	for _, rules := range []EncodingRules{BER, CER, DER} {
		r, _ := NewReader([]byte{0x01, 0x01, 0xFF}, rules)
		v, err := r.ReadBoolean()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rules, err)
		}
		if !v {
			t.Errorf("%s: got false, want true", rules)
		}
		if err := r.ThrowIfNotEmpty(); err != nil {
			t.Errorf("%s: reader not exhausted: %v", rules, err)
		}
	}
}

func TestReadBooleanNonCanonicalTrue(t *testing.T) {
	// 01 01 01 is BOOLEAN true under BER, rejected under DER/CER.
	r, _ := NewReader([]byte{0x01, 0x01, 0x01}, BER)
	v, err := r.ReadBoolean()
	if err != nil {
		t.Fatalf("BER: unexpected error: %v", err)
	}
	if !v {
		t.Error("BER: got false, want true")
	}

	for _, rules := range []EncodingRules{CER, DER} {
		r, _ := NewReader([]byte{0x01, 0x01, 0x01}, rules)
		if _, err := r.ReadBoolean(); err == nil {
			t.Errorf("%s: expected rejection of non-canonical TRUE octet", rules)
		}
	}
}

func TestReadBooleanFalse(t *testing.T) {
	r, _ := NewReader([]byte{0x01, 0x01, 0x00}, DER)
	v, err := r.ReadBoolean()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v {
		t.Error("got true, want false")
	}
}

func TestReadBooleanWrongLength(t *testing.T) {
	r, _ := NewReader([]byte{0x01, 0x02, 0x00, 0x00}, DER)
	if _, err := r.ReadBoolean(); err == nil {
		t.Error("expected error for BOOLEAN content length != 1")
	}
}

func TestReadBooleanConstructedRejected(t *testing.T) {
	r, _ := NewReader([]byte{0x21, 0x03, 0x01, 0x01, 0xFF}, BER)
	if _, err := r.ReadBoolean(); err == nil {
		t.Error("expected error for constructed BOOLEAN")
	}
}
