package research

import "encoding/binary"

// encodeWAV wraps raw PCM samples in a standard 44-byte RIFF header.
// The TTS API returns bare PCM; depth is in bytes per sample.
func encodeWAV(pcm []byte, channels, rate, depth int) []byte {
	dataLen := uint32(len(pcm))
	byteRate := uint32(rate * channels * depth)
	blockAlign := uint16(channels * depth)

	le := binary.LittleEndian
	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = le.AppendUint32(header, 36+dataLen)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = le.AppendUint32(header, 16)
	header = le.AppendUint16(header, 1)
	header = le.AppendUint16(header, uint16(channels))
	header = le.AppendUint32(header, uint32(rate))
	header = le.AppendUint32(header, byteRate)
	header = le.AppendUint16(header, blockAlign)
	header = le.AppendUint16(header, uint16(depth*8))
	header = append(header, "data"...)
	header = le.AppendUint32(header, dataLen)

	return append(header, pcm...)
}
