// Package loader handles loading of the binary C64 ROM images.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
)

// Image describes a binary ROM image file and where it is mapped.
type Image struct {
	Name     string
	Address  uint16
	Size     int
	Checksum uint16 // checksum of the stock Commodore ROM
}

// Images lists the ROM images of the C64 in load order.
var Images = []Image{
	{Name: "chargen", Address: 0xD000, Size: 0x1000, Checksum: 0xF7F7},
	{Name: "basic", Address: 0xA000, Size: 0x2000, Checksum: 0x3D55},
	{Name: "kernal", Address: 0xE000, Size: 0x2000, Checksum: 0xC709},
}

// ROM receives the loaded image data.
type ROM interface {
	LoadROM(address uint16, data []byte)
}

// Loader handles loading ROM image files from disk.
type Loader struct {
	logger *log.Logger
	rom    ROM
}

// New creates a new ROM image loader.
func New(logger *log.Logger, rom ROM) *Loader {
	return &Loader{
		logger: logger,
		rom:    rom,
	}
}

// LoadAll loads all ROM images from the given directory and logs their
// checksums. Checksums are informational only and do not fail the load.
func (l *Loader) LoadAll(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("ROM folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ROM folder '%s' is not a directory", dir)
	}

	for _, image := range Images {
		checksum, err := l.Load(filepath.Join(dir, image.Name), image)
		if err != nil {
			return err
		}

		l.logger.Info("ROM loaded",
			log.String("name", image.Name),
			log.Hex("address", image.Address),
			log.Hex("checksum", checksum))
		if checksum != image.Checksum {
			l.logger.Warn("ROM checksum differs from stock ROM",
				log.String("name", image.Name),
				log.Hex("expected", image.Checksum))
		}
	}
	return nil
}

// Load reads a single image file and copies it into ROM. It returns the
// checksum of the image.
func (l *Loader) Load(fileName string, image Image) (uint16, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return 0, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	data := make([]byte, image.Size)
	if _, err := io.ReadFull(file, data); err != nil {
		return 0, fmt.Errorf("reading %d bytes from %s: %w", image.Size, fileName, err)
	}

	l.rom.LoadROM(image.Address, data)
	return Checksum(data), nil
}

// Checksum returns the 16 bit running sum of the data, seeded with $FFFF.
func Checksum(data []byte) uint16 {
	sum := uint16(0xFFFF)
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
