package research

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	got := encodeWAV(pcm, 1, 24000, 2)

	if len(got) != 44+len(pcm) {
		t.Fatalf("encoded length = %d, want %d", len(got), 44+len(pcm))
	}

	le := binary.LittleEndian
	if !bytes.Equal(got[0:4], []byte("RIFF")) {
		t.Errorf("chunk id = %q, want RIFF", got[0:4])
	}
	if size := le.Uint32(got[4:8]); size != uint32(36+len(pcm)) {
		t.Errorf("chunk size = %d, want %d", size, 36+len(pcm))
	}
	if !bytes.Equal(got[8:12], []byte("WAVE")) {
		t.Errorf("format = %q, want WAVE", got[8:12])
	}
	if !bytes.Equal(got[12:16], []byte("fmt ")) {
		t.Errorf("subchunk id = %q, want \"fmt \"", got[12:16])
	}
	if format := le.Uint16(got[20:22]); format != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", format)
	}
	if channels := le.Uint16(got[22:24]); channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if rate := le.Uint32(got[24:28]); rate != 24000 {
		t.Errorf("sample rate = %d, want 24000", rate)
	}
	if byteRate := le.Uint32(got[28:32]); byteRate != 48000 {
		t.Errorf("byte rate = %d, want 48000", byteRate)
	}
	if blockAlign := le.Uint16(got[32:34]); blockAlign != 2 {
		t.Errorf("block align = %d, want 2", blockAlign)
	}
	if bits := le.Uint16(got[34:36]); bits != 16 {
		t.Errorf("bits per sample = %d, want 16", bits)
	}
	if !bytes.Equal(got[36:40], []byte("data")) {
		t.Errorf("data id = %q, want data", got[36:40])
	}
	if dataLen := le.Uint32(got[40:44]); dataLen != uint32(len(pcm)) {
		t.Errorf("data length = %d, want %d", dataLen, len(pcm))
	}
	if !bytes.Equal(got[44:], pcm) {
		t.Error("payload does not match input samples")
	}
}

func TestEncodeWAVEmpty(t *testing.T) {
	got := encodeWAV(nil, 2, 44100, 2)

	if len(got) != 44 {
		t.Fatalf("encoded length = %d, want 44", len(got))
	}
	if size := binary.LittleEndian.Uint32(got[4:8]); size != 36 {
		t.Errorf("chunk size = %d, want 36", size)
	}
}
