// Package animation orders the frame chunks of an animated PNG into a
// playback timeline. It works on chunk references only; decoding and
// compositing the frame images is left to the caller.
package animation

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/deepteams/pngcontainer/chunk"
)

// ErrOrphanData means a data chunk appeared before any frame control
// chunk, so there is no frame to attach it to.
var ErrOrphanData = errors.New("png: frame data before any frame control chunk")

// Frame is one animation frame: its frame control chunk and the data
// chunks holding its image, in playback order.
type Frame struct {
	// Control references the frame's fcTL chunk. It is the zero Ref for
	// a still image's single frame.
	Control chunk.Ref

	// Sequence is the frame's position in playback order, taken from
	// the fcTL sequence number.
	Sequence uint32

	// Data references the IDAT or fdAT chunks carrying the frame's
	// compressed image data.
	Data []chunk.Ref
}

// entry is one chunk on the merged animation timeline.
type entry struct {
	ref chunk.Ref
	seq uint32
}

// Assemble orders the animation chunks of a stream into frames. fctls,
// fdats, and idats are the fcTL, fdAT, and IDAT references collected
// during a scan, in file order. firstFrameIsStatic says an fcTL
// preceded the first IDAT, so the default image doubles as frame 0 and
// the IDAT references join the timeline.
//
// File order is not trusted for fcTL and fdAT: their true sequence
// numbers are read back from the stream and the timeline is sorted by
// them. IDAT chunks carry no sequence number; when they participate
// they are numbered 0..n-1 in file order and every fcTL/fdAT sequence
// number is offset by n, which keeps the default image's data ahead of
// the controls that follow it.
func Assemble(rs io.ReadSeeker, fctls, fdats, idats []chunk.Ref, firstFrameIsStatic bool) ([]Frame, error) {
	entries := make([]entry, 0, len(fctls)+len(fdats)+len(idats))

	var offset uint32
	if firstFrameIsStatic {
		for i, ref := range idats {
			entries = append(entries, entry{ref: ref, seq: uint32(i)})
		}
		offset = uint32(len(idats))
	}

	for _, ref := range append(append([]chunk.Ref(nil), fctls...), fdats...) {
		seq, err := ref.ReadSequence(rs)
		if err != nil {
			return nil, fmt.Errorf("png: reading %s sequence number: %w", ref.Type, err)
		}
		entries = append(entries, entry{ref: ref, seq: seq + offset})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	var frames []Frame
	var open *Frame
	var pending []chunk.Ref // leading IDAT run awaiting its fcTL

	for _, e := range entries {
		switch e.ref.Type {
		case chunk.TypeFCTL:
			if open != nil {
				frames = append(frames, *open)
			}
			open = &Frame{
				Control:  e.ref,
				Sequence: e.seq - offset, // back to the on-wire number
				Data:     pending,
			}
			pending = nil

		case chunk.TypeFDAT, chunk.TypeIDAT:
			if open == nil {
				if firstFrameIsStatic && e.ref.Type == chunk.TypeIDAT {
					pending = append(pending, e.ref)
					continue
				}
				return nil, fmt.Errorf("%w: %s at offset %d",
					ErrOrphanData, e.ref.Type, e.ref.Pos)
			}
			open.Data = append(open.Data, e.ref)
		}
	}
	if open != nil {
		frames = append(frames, *open)
	}
	return frames, nil
}
