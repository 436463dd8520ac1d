package acquire

import "context"

// ImageAcquirer scans a mounted or extracted firmware image root.
// Mounting the image is an external step; once a root directory
// exists, the scan itself is the filesystem scan with image origin
// metadata.
type ImageAcquirer struct {
	fs *FilesystemAcquirer
}

// Acquire implements Acquirer.
func (a *ImageAcquirer) Acquire(ctx context.Context) (*Acquisition, error) {
	return a.fs.Acquire(ctx)
}
