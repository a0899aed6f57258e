// Command pngchunks inspects the chunk structure of PNG, APNG, and JNG
// files without decoding any image data.
//
// Usage:
//
//	pngchunks list <input>     List every chunk with offset, length, and details
//	pngchunks info <input>     Display container metadata
//	pngchunks frames <input>   Display the animation timeline
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/deepteams/pngcontainer"
	"github.com/deepteams/pngcontainer/chunk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "frames":
		err = runFrames(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pngchunks: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pngchunks: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  pngchunks list <input>     List every chunk with offset, length, and details
  pngchunks info <input>     Display container metadata
  pngchunks frames <input>   Display the animation timeline
`)
}

func openReader(path string) (*pngcontainer.SeekableReader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r, err := pngcontainer.NewSeekableReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f, nil
}

// --- list ---

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	raw := fs.Bool("raw", false, "skip payload decoding, show structure only")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("list: missing input file\nUsage: pngchunks list <input>")
	}

	r, f, err := openReader(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	refs, err := r.ScanAllChunks()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	for _, ref := range refs {
		detail := ""
		if !*raw {
			detail = describe(r, ref)
		}
		fmt.Printf("%8d  %s %s %8d  %s\n",
			ref.Pos, ref.Type, flagString(ref.Type), ref.Length, detail)
	}
	return nil
}

// flagString renders the type-code property bits as a four-letter tag,
// one letter per bit, with "-" for an unset bit.
func flagString(t chunk.TypeCode) string {
	var b strings.Builder
	for i, c := range [4]byte{'a', 'p', 'r', 's'} {
		set := false
		switch i {
		case 0:
			set = t.Ancillary()
		case 1:
			set = t.Private()
		case 2:
			set = t.Reserved()
		case 3:
			set = t.SafeToCopy()
		}
		if set {
			b.WriteByte(c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// describe decodes a chunk and renders a one-line summary. Chunks that
// cannot be decoded get a note instead of failing the listing.
func describe(r *pngcontainer.SeekableReader, ref chunk.Ref) string {
	p, err := r.ReadChunk(ref)
	if err != nil {
		switch {
		case errors.Is(err, chunk.ErrUnknownChunkType):
			return "(unknown chunk type)"
		case errors.Is(err, chunk.ErrCRCMismatch):
			return "(CRC MISMATCH)"
		default:
			return fmt.Sprintf("(%v)", err)
		}
	}

	switch v := p.(type) {
	case *chunk.IHDR:
		return fmt.Sprintf("%d x %d, %d-bit %s, interlace %v",
			v.Width, v.Height, v.BitDepth, v.Colour, v.Interlace)
	case *chunk.PLTE:
		return fmt.Sprintf("%d entries", len(v.Entries))
	case *chunk.IDAT:
		return fmt.Sprintf("%d bytes of image data", len(v.Data))
	case *chunk.GAMA:
		return fmt.Sprintf("gamma %g", v.Gamma())
	case *chunk.CHRM:
		wx, wy := v.WhitePoint()
		return fmt.Sprintf("white point (%g, %g)", wx, wy)
	case *chunk.SRGB:
		return fmt.Sprintf("rendering intent %v", v.Intent)
	case *chunk.ICCP:
		return fmt.Sprintf("profile %q", v.Name)
	case *chunk.TEXT:
		return fmt.Sprintf("%s: %s", v.Keyword, v.Value)
	case *chunk.ZTXT:
		if text, err := v.Text(); err == nil {
			return fmt.Sprintf("%s: %s", v.Keyword, text)
		}
		return fmt.Sprintf("%s: (undecompressable)", v.Keyword)
	case *chunk.ITXT:
		if text, err := v.Text(); err == nil {
			return fmt.Sprintf("%s: %s", v.Keyword, text)
		}
		return fmt.Sprintf("%s: (undecompressable)", v.Keyword)
	case *chunk.PHYS:
		if x, y, ok := v.PixelsPerMetre(); ok {
			return fmt.Sprintf("%g x %g pixels/metre", x, y)
		}
		return fmt.Sprintf("aspect ratio %d:%d", v.XPixelsPerUnit, v.YPixelsPerUnit)
	case *chunk.TIME:
		return v.Time().Format("2006-01-02 15:04:05 MST")
	case *chunk.BKGD:
		return fmt.Sprintf("background for %s", v.Colour)
	case *chunk.TRNS:
		return fmt.Sprintf("transparency for %s", v.Colour)
	case *chunk.SPLT:
		return fmt.Sprintf("%q, %d-bit, %d entries", v.Name, v.Depth, len(v.Entries))
	case *chunk.ACTL:
		loop := "infinite"
		if v.NumPlays > 0 {
			loop = fmt.Sprintf("%d", v.NumPlays)
		}
		return fmt.Sprintf("%d frames, loop %s", v.NumFrames, loop)
	case *chunk.FCTL:
		return fmt.Sprintf("seq %d, %d x %d at (%d, %d), delay %v",
			v.Sequence, v.Width, v.Height, v.XOffset, v.YOffset, v.Delay())
	case *chunk.FDAT:
		return fmt.Sprintf("seq %d, %d bytes of frame data", v.Sequence, len(v.Data))
	case *chunk.OFFS:
		return fmt.Sprintf("offset (%d, %d)", v.X, v.Y)
	case *chunk.STER:
		return fmt.Sprintf("stereo %d", v.Mode)
	case *chunk.EXIF:
		return fmt.Sprintf("%d bytes of Exif data", len(v.Profile))
	case *chunk.JHDR:
		return fmt.Sprintf("%d x %d JNG, alpha depth %d",
			v.Width, v.Height, v.AlphaSampleDepth)
	case *chunk.JDAT:
		return fmt.Sprintf("%d bytes of JPEG data", len(v.Data))
	case *chunk.IDOT:
		return fmt.Sprintf("%d segments", len(v.Segments))
	case *chunk.CANV:
		return fmt.Sprintf("canvas %d x %d at (%d, %d)",
			v.Width, v.Height, v.XOffset, v.YOffset)
	case *chunk.VPAG:
		return fmt.Sprintf("virtual page %d x %d", v.Width, v.Height)
	case *chunk.IEND:
		return ""
	}
	return ""
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: pngchunks info <input>")
	}
	inputPath := args[0]

	r, f, err := openReader(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	refs, err := r.ScanAllChunks()
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("File:       %s\n", inputPath)
	fmt.Printf("Format:     %s\n", r.Kind())
	fmt.Printf("Chunks:     %d\n", len(refs))

	switch {
	case r.IHDR() != nil:
		h := r.IHDR()
		fmt.Printf("Dimensions: %d x %d\n", h.Width, h.Height)
		fmt.Printf("Colour:     %d-bit %s\n", h.BitDepth, h.Colour)
		fmt.Printf("Palette:    %v\n", r.HasPalette())
	case r.JHDR() != nil:
		h := r.JHDR()
		fmt.Printf("Dimensions: %d x %d\n", h.Width, h.Height)
		fmt.Printf("Alpha:      %v\n", h.HasAlpha())
	}

	if r.Kind() == pngcontainer.KindApng {
		frames, err := r.Frames()
		if err != nil {
			return fmt.Errorf("info: %w", err)
		}
		fmt.Printf("Frames:     %d\n", len(frames))
	}

	if fi, err := os.Stat(inputPath); err == nil {
		fmt.Printf("File size:  %d bytes\n", fi.Size())
	}
	return nil
}

// --- frames ---

func runFrames(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("frames: missing input file\nUsage: pngchunks frames <input>")
	}

	r, f, err := openReader(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := r.ScanAllChunks(); err != nil {
		return fmt.Errorf("frames: %w", err)
	}
	frames, err := r.Frames()
	if err != nil {
		return fmt.Errorf("frames: %w", err)
	}

	for i, fr := range frames {
		var size int64
		for _, d := range fr.Data {
			size += int64(d.Length)
		}
		if fr.Control == (chunk.Ref{}) {
			fmt.Printf("frame %d: still image, %d data chunks, %d bytes\n",
				i, len(fr.Data), size)
			continue
		}
		p, err := r.ReadChunk(fr.Control)
		if err != nil {
			return fmt.Errorf("frames: frame %d: %w", i, err)
		}
		fc := p.(*chunk.FCTL)
		fmt.Printf("frame %d: seq %d, %d x %d at (%d, %d), delay %v, %d data chunks, %d bytes\n",
			i, fc.Sequence, fc.Width, fc.Height, fc.XOffset, fc.YOffset,
			fc.Delay(), len(fr.Data), size)
	}
	return nil
}
