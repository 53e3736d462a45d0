package binfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/unicode"
)

const (
	// Vista through Windows 8.1
	version1 int64 = 1
	// Windows 10 and later
	version2 int64 = 2

	// v1 stores the path in a fixed MAX_PATH buffer
	maxPath = 260

	// 100ns ticks between 1601-01-01 and 1970-01-01
	filetimeEpochDelta = 116444736000000000
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Record is the content of a $I metadata file
type Record struct {
	Version int64

	// Size is the payload size in bytes at deletion time
	Size int64

	DeletedAt time.Time

	// Path is where the payload lived before deletion
	Path string
}

type header struct {
	Version  int64
	Size     int64
	Filetime int64
}

// ParseRecord decodes a $I record
func ParseRecord(r io.Reader) (*Record, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidRecord, err)
	}

	var units int
	switch h.Version {
	case version1:
		units = maxPath
	case version2:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: path length: %v", ErrInvalidRecord, err)
		}
		if n == 0 || n > 32767 {
			return nil, fmt.Errorf("%w: path length %d", ErrInvalidRecord, n)
		}
		units = int(n)
	default:
		return nil, fmt.Errorf("%w: version %d", ErrInvalidRecord, h.Version)
	}

	raw := make([]byte, units*2)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: path: %v", ErrInvalidRecord, err)
	}
	path, err := decodePath(raw)
	if err != nil {
		return nil, err
	}

	return &Record{
		Version:   h.Version,
		Size:      h.Size,
		DeletedAt: filetimeToTime(h.Filetime),
		Path:      path,
	}, nil
}

// MarshalBinary encodes the record in its Version's layout
func (rec *Record) MarshalBinary() ([]byte, error) {
	path, err := utf16le.NewEncoder().Bytes([]byte(rec.Path))
	if err != nil {
		return nil, fmt.Errorf("encode path: %w", err)
	}
	path = append(path, 0, 0)
	units := len(path) / 2

	buf := new(bytes.Buffer)
	h := header{Version: rec.Version, Size: rec.Size, Filetime: timeToFiletime(rec.DeletedAt)}
	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}

	switch rec.Version {
	case version1:
		if units > maxPath {
			return nil, fmt.Errorf("path longer than %d characters: %s", maxPath-1, rec.Path)
		}
		buf.Write(path)
		buf.Write(make([]byte, (maxPath-units)*2))
	case version2:
		_ = binary.Write(buf, binary.LittleEndian, uint32(units))
		buf.Write(path)
	default:
		return nil, fmt.Errorf("%w: version %d", ErrInvalidRecord, rec.Version)
	}
	return buf.Bytes(), nil
}

// decodePath converts NUL-terminated UTF-16LE into a string
func decodePath(raw []byte) (string, error) {
	end := len(raw)
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	if end == 0 {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRecord)
	}
	b, err := utf16le.NewDecoder().Bytes(raw[:end])
	if err != nil {
		return "", fmt.Errorf("%w: path encoding: %v", ErrInvalidRecord, err)
	}
	return string(b), nil
}

func filetimeToTime(ft int64) time.Time {
	if ft <= filetimeEpochDelta {
		return time.Time{}
	}
	ticks := ft - filetimeEpochDelta
	return time.Unix(ticks/1e7, (ticks%1e7)*100)
}

func timeToFiletime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()/100 + filetimeEpochDelta
}
