// Package machotest writes minimal Mach-O files for tests.
package machotest

import (
	"bytes"
	"debug/macho"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Thin returns a 64-bit little-endian Mach-O image with no load commands.
func Thin(cpu macho.Cpu, typ macho.Type) []byte {
	var buf bytes.Buffer
	hdr := macho.FileHeader{
		Magic:  macho.Magic64,
		Cpu:    cpu,
		SubCpu: 0,
		Type:   typ,
	}
	_ = binary.Write(&buf, binary.LittleEndian, hdr)
	// reserved word of mach_header_64
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0))
	return buf.Bytes()
}

// Fat wraps the given thin images in a universal header.
func Fat(slices ...[]byte) []byte {
	const align = 12
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(macho.MagicFat))
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(slices)))

	offset := uint32(1 << align)
	var body bytes.Buffer
	for _, s := range slices {
		cpu := macho.Cpu(binary.LittleEndian.Uint32(s[4:8]))
		h := macho.FatArchHeader{
			Cpu:    cpu,
			Offset: offset + uint32(body.Len()),
			Size:   uint32(len(s)),
			Align:  align,
		}
		_ = binary.Write(&buf, binary.BigEndian, h)
		body.Write(s)
		for body.Len()%(1<<align) != 0 {
			body.WriteByte(0)
		}
	}

	for uint32(buf.Len()) < offset {
		buf.WriteByte(0)
	}
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// WriteFile writes data under path with executable permissions, creating parents.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteExecutable writes a thin Mach-O executable for cpu at path.
func WriteExecutable(t testing.TB, path string, cpu macho.Cpu) {
	t.Helper()
	WriteFile(t, path, Thin(cpu, macho.TypeExec))
}
