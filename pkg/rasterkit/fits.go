package rasterkit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	fitsRecordSize   = 80
	fitsRecordsBlock = 36

	// maxFITSDataBytes caps the pixel payload a header may announce.
	maxFITSDataBytes = 1 << 28
)

// FITSHeader holds the keyword/value cards of a FITS primary header.
type FITSHeader struct {
	Cards map[string]string
}

func (h *FITSHeader) GetString(key string) string {
	return h.Cards[strings.ToUpper(key)]
}

func (h *FITSHeader) GetFloat(key string) (float64, bool) {
	v, ok := h.Cards[strings.ToUpper(key)]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (h *FITSHeader) GetInt(key string) (int, bool) {
	v, ok := h.Cards[strings.ToUpper(key)]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// ReadFITS loads the first image plane of a FITS file as a single-channel
// Image with samples in [0, 1].
func ReadFITS(path string) (*Image, *FITSHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening FITS file: %w", err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat FITS file: %w", err)
	}
	return decodeFITS(f, fi.Size())
}

// DecodeFITSBytes is DecodeFITS over an in-memory file.
func DecodeFITSBytes(data []byte) (*Image, *FITSHeader, error) {
	return decodeFITS(bytes.NewReader(data), int64(len(data)))
}

// DecodeFITS parses a FITS primary HDU from r.
//
// Integer data is scaled by BSCALE/BZERO, clamped to the unsigned range of
// its bit depth (8 bits for BITPIX 8, 16 otherwise) and divided by that
// range. Float data is clamped to [0, 1] when it already lies there and
// is otherwise treated like 16-bit data. Headers announcing more than
// 256 MiB of pixel data are rejected with ErrInvalidDimension.
func DecodeFITS(r io.Reader) (*Image, *FITSHeader, error) {
	return decodeFITS(r, maxFITSDataBytes)
}

// decodeFITS rejects headers announcing more than limit bytes of pixel data
// before allocating anything for them.
func decodeFITS(r io.Reader, limit int64) (*Image, *FITSHeader, error) {
	header, err := readFITSHeader(r)
	if err != nil {
		return nil, nil, err
	}

	naxis, _ := header.GetInt("NAXIS")
	width, _ := header.GetInt("NAXIS1")
	height, _ := header.GetInt("NAXIS2")
	bitpix, _ := header.GetInt("BITPIX")
	if naxis < 2 || width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("%w: FITS NAXIS=%d, NAXIS1=%d, NAXIS2=%d",
			ErrInvalidDimension, naxis, width, height)
	}
	bzero, ok := header.GetFloat("BZERO")
	if !ok {
		bzero = 0
	}
	bscale, ok := header.GetFloat("BSCALE")
	if !ok {
		bscale = 1
	}

	bytesPerSample := abs(bitpix) / 8
	if bytesPerSample == 0 {
		return nil, nil, fmt.Errorf("unsupported BITPIX: %d", bitpix)
	}
	limit = min(limit, maxFITSDataBytes)
	if int64(width) > limit/int64(height)/int64(bytesPerSample) {
		return nil, nil, fmt.Errorf("%w: FITS %dx%d at BITPIX %d exceeds %d bytes of input",
			ErrInvalidDimension, width, height, bitpix, limit)
	}
	n := width * height
	raw := make([]byte, n*bytesPerSample)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, nil, fmt.Errorf("reading %d-bit pixel data: %w", bitpix, err)
	}

	physical := make([]float64, n)
	for i := range physical {
		var v float64
		switch bitpix {
		case 8:
			v = float64(raw[i])
		case 16:
			v = float64(int16(binary.BigEndian.Uint16(raw[i*2:])))
		case 32:
			v = float64(int32(binary.BigEndian.Uint32(raw[i*4:])))
		case -32:
			v = float64(math.Float32frombits(binary.BigEndian.Uint32(raw[i*4:])))
		case -64:
			v = math.Float64frombits(binary.BigEndian.Uint64(raw[i*8:]))
		default:
			return nil, nil, fmt.Errorf("unsupported BITPIX: %d", bitpix)
		}
		physical[i] = v*bscale + bzero
	}

	maxVal := 65535.0
	switch {
	case bitpix == 8:
		maxVal = 255
	case bitpix < 0 && unitRange(physical):
		maxVal = 1
	}

	im := newImage(width, height, 1)
	for i, v := range physical {
		im.data[i] = clampFloat64(v, 0, maxVal) / maxVal
	}
	return im, header, nil
}

func readFITSHeader(r io.Reader) (*FITSHeader, error) {
	header := &FITSHeader{Cards: make(map[string]string)}
	record := make([]byte, fitsRecordSize)
	for {
		for i := 0; i < fitsRecordsBlock; i++ {
			if _, err := io.ReadFull(r, record); err != nil {
				return nil, fmt.Errorf("reading FITS header record: %w", err)
			}
			keyword := strings.TrimSpace(string(record[:8]))
			if keyword == "END" {
				// Skip the rest of the header block.
				rest := (fitsRecordsBlock - 1 - i) * fitsRecordSize
				if _, err := io.CopyN(io.Discard, r, int64(rest)); err != nil {
					return nil, fmt.Errorf("skipping FITS header padding: %w", err)
				}
				return header, nil
			}
			if record[8] == '=' && record[9] == ' ' {
				raw := strings.TrimSpace(strings.SplitN(string(record[10:]), "/", 2)[0])
				if v := parseFITSValue(raw); keyword != "" && v != "" {
					header.Cards[strings.ToUpper(keyword)] = v
				}
			}
		}
	}
}

func parseFITSValue(raw string) string {
	switch {
	case raw == "":
		return ""
	case raw == "T":
		return "True"
	case raw == "F":
		return "False"
	case strings.HasPrefix(raw, "'"):
		if end := strings.LastIndex(raw, "'"); end > 0 {
			return strings.TrimRight(raw[1:end], " ")
		}
		return strings.TrimLeft(strings.TrimRight(raw, " "), "'")
	}
	return raw
}

func unitRange(v []float64) bool {
	for _, x := range v {
		if x < 0 || x > 1 {
			return false
		}
	}
	return true
}

func clampFloat64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
