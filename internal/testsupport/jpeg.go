package testsupport

import (
	"bytes"
	"encoding/binary"
)

// JPEGWithExif returns a JPEG byte stream carrying an APP1 EXIF segment with
// IFD0 Make and Orientation tags. An orientation of 0 omits that tag; an empty
// camera omits Make. There is no image data, so only metadata readers can
// consume the result.
func JPEGWithExif(orientation uint16, camera string) []byte {
	tiff := tiffWithTags(orientation, camera)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xFE, 0x00, 0x02})
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// PlainJPEG returns a JPEG byte stream without any APP1 segment.
func PlainJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xFE, 0x00, 0x02, 0xFF, 0xD9}
}

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

// tiffWithTags builds a big-endian TIFF structure with a single IFD. Entries
// are written in tag order: Make (0x010F) then Orientation (0x0112).
func tiffWithTags(orientation uint16, camera string) []byte {
	var entries []ifdEntry
	var extra []byte

	n := 0
	if camera != "" {
		n++
	}
	if orientation != 0 {
		n++
	}
	dataOffset := uint32(8 + 2 + n*12 + 4)

	if camera != "" {
		ascii := append([]byte(camera), 0)
		e := ifdEntry{tag: 0x010F, typ: 2, count: uint32(len(ascii))}
		if len(ascii) <= 4 {
			copy(e.value[:], ascii)
		} else {
			binary.BigEndian.PutUint32(e.value[:], dataOffset)
			extra = append(extra, ascii...)
		}
		entries = append(entries, e)
	}
	if orientation != 0 {
		e := ifdEntry{tag: 0x0112, typ: 3, count: 1}
		binary.BigEndian.PutUint16(e.value[:2], orientation)
		entries = append(entries, e)
	}

	var buf bytes.Buffer
	buf.WriteString("MM")
	_ = binary.Write(&buf, binary.BigEndian, uint16(42))
	_ = binary.Write(&buf, binary.BigEndian, uint32(8))
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(entries)))
	for _, e := range entries {
		_ = binary.Write(&buf, binary.BigEndian, e.tag)
		_ = binary.Write(&buf, binary.BigEndian, e.typ)
		_ = binary.Write(&buf, binary.BigEndian, e.count)
		buf.Write(e.value[:])
	}
	_ = binary.Write(&buf, binary.BigEndian, uint32(0))
	buf.Write(extra)
	return buf.Bytes()
}
