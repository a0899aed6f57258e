// Package pngcontainer reads and writes the chunk structure of PNG-family
// files: PNG, animated PNG (APNG), and JNG. It works at the container
// level — chunks in, chunks out — without decompressing or rendering
// image data.
//
// The package supports:
//   - Signature sniffing for PNG, JNG, and MNG streams
//   - A forward scanner over any io.Reader and a random-access reader
//     over an io.ReadSeeker
//   - Typed decode and re-encode of the full chunk catalogue, with CRC
//     verification on every chunk
//   - APNG frame assembly from fcTL/fdAT/IDAT sequence numbers
//   - Pull-style concatenation of IDAT/fdAT/JDAT data streams
//
// Basic usage for scanning:
//
//	r, err := pngcontainer.NewReader(f)
//	refs, err := r.ScanAllChunks()
//
// Typed payloads decode through the chunk package:
//
//	payload, err := sr.ReadChunk(refs[0])
package pngcontainer
