// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runstore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the algorithm a stored run log was
// compressed with. The tag doubles as the log file's extension, so a
// store directory is inspectable with ordinary tools.
type CompressionTag uint8

const (
	// CompressionNone stores the log uncompressed. For tiny logs the
	// compression framing costs more than it saves.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 uses LZ4 frame compression: fast with modest
	// ratios, a reasonable default when log volume is high and disk
	// is not the constraint.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd uses zstd at level 3: the default. Step logs
	// are text, where zstd's ratio advantage is largest.
	CompressionZstd CompressionTag = 2
)

// String returns the tag's name, which is also the log file extension.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "txt"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zst"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// ParseCompressionTag parses a tag from its string form.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "txt", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zst", "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (supported: none, lz4, zstd)", name)
	}
}

// compress encodes data with the tagged algorithm.
func compress(tag CompressionTag, data []byte) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	case CompressionZstd:
		writer, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer writer.Close()
		return writer.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
}

// decompress decodes data that compress produced with the same tag.
func decompress(tag CompressionTag, data []byte) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		decoded, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return decoded, nil

	case CompressionZstd:
		reader, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer reader.Close()
		decoded, err := reader.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
}
