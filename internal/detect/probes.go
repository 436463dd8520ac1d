package detect

// Environment access is split into narrow read-only capability
// interfaces so strategies can be tested against fakes without
// touching a real host. A probe that cannot read its signal source
// returns an error; the engine treats that as the owning strategy
// declining, never as a failure.

// BoardNameReader reads the device-tree board model string.
type BoardNameReader interface {
	// ModelString returns the board model (e.g. "Raspberry Pi 4 Model B
	// Rev 1.4")
	ModelString() (string, error)
}

// PropertyReader reads the Android platform property bundle.
type PropertyReader interface {
	// Properties returns the property store as a flat map
	// (e.g. "ro.product.device" -> "hammerhead")
	Properties() (map[string]string, error)
}

// KernelLogReader reads the kernel log buffer.
type KernelLogReader interface {
	// Lines returns the kernel log, one entry per line
	Lines() ([]string, error)
}

// FirmwareDirLister enumerates firmware blobs already present on the
// local filesystem.
type FirmwareDirLister interface {
	// ListFirmwareFiles returns the filenames found in the known
	// firmware blob directories
	ListFirmwareFiles() ([]string, error)
}

// Probes bundles the capability interfaces consumed by the default
// strategy chain. Nil members make the corresponding strategy decline.
type Probes struct {
	Board        BoardNameReader
	Properties   PropertyReader
	KernelLog    KernelLogReader
	FirmwareDirs FirmwareDirLister
}
