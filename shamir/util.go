package shamir

import (
	"encoding/binary"
	"io"

	"github.com/glottologist/seedmixer/util"
	"github.com/renproject/surge"
)

func marshalIndices(indices []Fn, w io.Writer, m int) (int, error) {
	if m < 4 {
		return m, surge.ErrMaxBytesExceeded
	}

	var bs [4]byte
	binary.BigEndian.PutUint32(bs[:], uint32(len(indices)))
	n, err := w.Write(bs[:])
	m -= n
	if err != nil {
		return m, err
	}

	for i := range indices {
		m, err = indices[i].Marshal(w, m)
		if err != nil {
			return m, err
		}
	}

	return m, nil
}

func unmarshalIndices(dst *[]Fn, r io.Reader, m int) (int, error) {
	var l uint32
	m, err := util.UnmarshalSliceLen32(&l, FnSizeBytes, r, m)
	if err != nil {
		return m, err
	}

	*dst = (*dst)[:0]
	for i := uint32(0); i < l; i++ {
		*dst = append(*dst, Fn{})
		m, err = (*dst)[i].Unmarshal(r, m)
		if err != nil {
			return m, err
		}
	}

	return m, nil
}
