// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downscales uploaded product images. The result is a JPEG
// that fits within a bounding box; images already small enough are only
// re-encoded, never upscaled. Catalogs without object storage embed the
// output directly as a data URI on the product row.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension is the longest allowed side of a stored product image.
	MaxDimension = 800

	// jpegQuality balances size against artifacts for product photos.
	jpegQuality = 85
)

// Downscale decodes src (JPEG, PNG, or GIF), scales it to fit within
// MaxDimension on its longest side, and re-encodes it as JPEG.
func Downscale(src []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imaging: empty %s image", format)
	}

	if w > MaxDimension || h > MaxDimension {
		scale := float64(MaxDimension) / float64(w)
		if h > w {
			scale = float64(MaxDimension) / float64(h)
		}
		dstW := int(float64(w)*scale + 0.5)
		dstH := int(float64(h)*scale + 0.5)

		dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps JPEG bytes as a data: URI suitable for the image_url column.
func DataURI(jpegBytes []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegBytes)
}
