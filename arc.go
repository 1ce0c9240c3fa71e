// Package arc provides lossless compression based on adaptive arithmetic coding.
// An order-0 frequency model adapts to the bytes seen so far, and a 32-bit
// renormalizing coder packs each byte into a fraction of the interval the model
// assigns it, approaching the empirical entropy of the stream.
//
// Below is an example of compressing and restoring Lincoln's Gettysburg address:
//    arc encode gettysburg.txt gettys.arc
//    arc decode gettys.arc gettys.out
//    diff gettysburg.txt gettys.out
package arc

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Stats summarizes a compression or decompression run.
type Stats struct {
	// RawSize is the size in bytes of the uncompressed data.
	RawSize int
	// CodedSize is the size in bytes of the coded artifact, trailer included.
	CodedSize int
	// Entropy is the Shannon entropy in bits per symbol of the data's
	// byte distribution.
	Entropy float64
}

// Ratio returns the compressed size as a fraction of the original size.
func (s Stats) Ratio() float64 {
	if s.RawSize == 0 {
		return 0
	}
	return float64(s.CodedSize) / float64(s.RawSize)
}

// Compress reads the file named name and writes its coded artifact to w.
func Compress(w io.Writer, name string) (Stats, error) {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}

	code, model := Encode(data)
	buf, err := code.MarshalBinary()
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	if _, err := w.Write(buf); err != nil {
		return Stats{}, errors.Wrap(err, "")
	}

	return Stats{RawSize: len(data), CodedSize: code.Size(), Entropy: model.Entropy()}, nil
}

// Decompress reads a coded artifact from r and writes the reconstructed
// bytes to w.
func Decompress(w io.Writer, r io.Reader) (Stats, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return Stats{}, errors.Wrap(err, "")
	}
	code, err := ParseCode(raw)
	if err != nil {
		return Stats{}, err
	}

	data, model := Decode(code)
	if _, err := w.Write(data); err != nil {
		return Stats{}, errors.Wrap(err, "")
	}

	return Stats{RawSize: len(data), CodedSize: len(raw), Entropy: model.Entropy()}, nil
}
