package tonetrack

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

const (
	BitsPerSample  = 16
	BytesPerSample = BitsPerSample / 8
	NumChannels    = 1

	// WavHeaderSize is the size of the canonical PCM header written before the
	// sample data.
	WavHeaderSize = 44

	wavePCM = 1

	// maxWavData is the largest data chunk whose RIFF chunk size still fits
	// in 32 bits.
	maxWavData = math.MaxUint32 - (WavHeaderSize - 8)
)

// Wav returns the track as a complete .wav file.
func (t *Track) Wav() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, WavHeaderSize+t.ByteLength()))
	if err := t.WriteWav(buf); err != nil {
		return nil, fmt.Errorf("Wav failed: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteWav writes the track to w as a mono 16-bit PCM RIFF/WAVE stream. All
// allocated blocks are written in full, including the parts that were never
// recorded to.
func (t *Track) WriteWav(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := wavHeader(t.ByteLength(), t.sampleRate, bw); err != nil {
		return fmt.Errorf("could not write wav header: %w", err)
	}
	if err := t.writeRaw(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush wav data: %w", err)
	}
	t.recorder.BytesWritten(WavHeaderSize + t.ByteLength())
	return nil
}

// Raw returns the sample data of the track without any header.
func (t *Track) Raw() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.writeRaw(&buf); err != nil {
		return nil, fmt.Errorf("Raw failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (t *Track) writeRaw(w io.Writer) error {
	for i, b := range t.blocks {
		if err := binary.Write(w, binary.LittleEndian, b[:]); err != nil {
			return fmt.Errorf("could not write block %d: %w", i, err)
		}
	}
	return nil
}

// Serialize writes the track as a .wav file to path. The data is first written
// to a temporary file in the same directory, which is then renamed over path,
// so a failed write never leaves a truncated file behind.
func (t *Track) Serialize(path string) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create %v: %w: %w", path, ErrResourceExhausted, err)
	}
	tmp := f.Name()
	if err := t.WriteWav(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write %v: %w: %w", path, ErrResourceExhausted, err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not chmod %v: %w: %w", path, ErrResourceExhausted, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close %v: %w: %w", path, ErrResourceExhausted, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not rename %v to %v: %w: %w", tmp, path, ErrResourceExhausted, err)
	}
	return nil
}

// SerializeToDir writes the track as name into the track directory and returns
// the full path of the file.
func (t *Track) SerializeToDir(name string) (string, error) {
	dir, err := t.Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	return path, t.Serialize(path)
}

// DumpBlocks writes every block as raw little-endian samples into the track
// directory, one file per block named after the block label, and returns the
// paths in block order.
func (t *Track) DumpBlocks() ([]string, error) {
	dir, err := t.Dir()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(t.blocks))
	var buf bytes.Buffer
	for i, b := range t.blocks {
		buf.Reset()
		binary.Write(&buf, binary.LittleEndian, b[:])
		path := filepath.Join(dir, BlockLabel(i)+".raw")
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return paths, fmt.Errorf("could not write block %v: %w: %w", path, ErrResourceExhausted, err)
		}
		t.recorder.BytesWritten(buf.Len())
		paths = append(paths, path)
	}
	return paths, nil
}

// wavHeader writes the 44 byte header of a mono 16-bit PCM .wav file holding
// dataLength bytes of samples.
func wavHeader(dataLength, sampleRate int, w io.Writer) error {
	if dataLength < 0 || int64(dataLength) > maxWavData {
		return fmt.Errorf("%d bytes of samples do not fit in a wav file: %w", dataLength, ErrResourceExhausted)
	}
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [8]byte // "WAVE" and the "fmt " chunk id
		FmtChunkSize  uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32 // avgBytesPerSec
		BlockAlign    uint16
		BitsPerSample uint16
		DataID        [4]byte
		DataSize      uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(dataLength + WavHeaderSize - 8),
		Format:        [8]byte{'W', 'A', 'V', 'E', 'f', 'm', 't', ' '},
		FmtChunkSize:  16,
		AudioFormat:   wavePCM,
		NumChannels:   NumChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * BytesPerSample * NumChannels),
		BlockAlign:    BytesPerSample * NumChannels,
		BitsPerSample: BitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(dataLength),
	}
	return binary.Write(w, binary.LittleEndian, &header)
}
