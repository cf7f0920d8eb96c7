package asn1

/*
pool.go contains the scratch-buffer pool used for constructed BIT
STRING / OCTET STRING reassembly. Unlike the teacher's encoder-side
pool (which merely truncates a buffer's length on release), scratch
buffers here may have held key material or other sensitive payload
bytes, so release always zeroes the backing array first.
*/

import "sync"

var scratchPool = sync.Pool{
	New: func() any { return new([]byte) },
}

// rentScratch returns a pooled buffer with at least capacity n, length 0.
func rentScratch(n int) *[]byte {
	p := scratchPool.Get().(*[]byte)
	if cap(*p) < n {
		*p = make([]byte, 0, n)
	}
	*p = (*p)[:0]
	return p
}

// releaseScratch zeroes the buffer's backing array and returns it to the
// pool. Callers must not retain any slice derived from *p after this
// call.
func releaseScratch(p *[]byte) {
	b := (*p)[:cap(*p)]
	for i := range b {
		b[i] = 0
	}
	*p = b[:0]
	scratchPool.Put(p)
}
