package storage

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime extracts the camera timestamp from a JPEG's EXIF block. Photos
// without usable EXIF data return nil; the upload proceeds either way, the
// report just shows the upload time instead.
func CaptureTime(photo []byte) *time.Time {
	x, err := exif.Decode(bytes.NewReader(photo))
	if err != nil {
		return nil
	}
	t, err := x.DateTime()
	if err != nil {
		return nil
	}
	return &t
}
