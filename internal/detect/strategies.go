package detect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwkit/bcmfw/internal/catalog"
)

// vendorMarkers are substrings that identify Broadcom WiFi driver
// lines in the kernel log. Lines matching one of these are then
// searched for chip-family numeric fragments.
var vendorMarkers = []string{"brcmfmac", "bcmdhd", "Broadcom"}

// boardStrategy matches the device-tree board model string against the
// catalog board table. Trusted hardware identity, so Exact confidence.
type boardStrategy struct {
	cat   *catalog.Catalog
	probe BoardNameReader
}

func (s *boardStrategy) Name() string { return "device-tree board model" }

func (s *boardStrategy) TryDetect() StrategyResult {
	result := StrategyResult{Strategy: s.Name()}

	if s.probe == nil {
		result.Skipped = true
		result.Detail = "no board name reader available"
		return result
	}

	model, err := s.probe.ModelString()
	if err != nil {
		result.Skipped = true
		result.Detail = "device-tree model not readable"
		return result
	}

	profile, ok := s.cat.ByBoardModel(model)
	if !ok {
		result.Detail = fmt.Sprintf("board %q not in catalog", model)
		return result
	}

	result.Detail = fmt.Sprintf("board %q", model)
	result.Detections = []Detection{{
		Profile:    profile,
		Confidence: ConfidenceExact,
		Strategy:   s.Name(),
		Evidence:   model,
	}}
	return result
}

// propertyStrategy matches the Android platform property triple
// (manufacturer/model/device) against the catalog device table.
type propertyStrategy struct {
	cat   *catalog.Catalog
	probe PropertyReader
}

func (s *propertyStrategy) Name() string { return "platform properties" }

func (s *propertyStrategy) TryDetect() StrategyResult {
	result := StrategyResult{Strategy: s.Name()}

	if s.probe == nil {
		result.Skipped = true
		result.Detail = "no property reader available"
		return result
	}

	props, err := s.probe.Properties()
	if err != nil {
		result.Skipped = true
		result.Detail = "property store not readable"
		return result
	}

	manufacturer := props["ro.product.manufacturer"]
	model := props["ro.product.model"]
	device := props["ro.product.device"]
	if manufacturer == "" && model == "" && device == "" {
		result.Detail = "property bundle has no product identity"
		return result
	}

	triple := fmt.Sprintf("%s/%s/%s", manufacturer, model, device)
	profile, ok := s.cat.ByDeviceTriple(manufacturer, model, device)
	if !ok {
		result.Detail = fmt.Sprintf("device %s not in catalog", triple)
		return result
	}

	result.Detail = fmt.Sprintf("device %s", triple)
	result.Detections = []Detection{{
		Profile:    profile,
		Confidence: ConfidenceExact,
		Strategy:   s.Name(),
		Evidence:   triple,
	}}
	return result
}

// kernelLogStrategy scans the kernel log for Broadcom driver lines and
// matches chip-family numeric fragments inside them. Best-effort, so
// Likely confidence.
type kernelLogStrategy struct {
	cat   *catalog.Catalog
	probe KernelLogReader
}

func (s *kernelLogStrategy) Name() string { return "kernel log scan" }

func (s *kernelLogStrategy) TryDetect() StrategyResult {
	result := StrategyResult{Strategy: s.Name()}

	if s.probe == nil {
		result.Skipped = true
		result.Detail = "no kernel log reader available"
		return result
	}

	lines, err := s.probe.Lines()
	if err != nil {
		result.Skipped = true
		result.Detail = "kernel log not readable"
		return result
	}

	for _, line := range lines {
		if !containsAny(line, vendorMarkers) {
			continue
		}
		profile, ok := s.cat.ByFragment(line)
		if !ok {
			continue
		}
		result.Detail = fmt.Sprintf("driver line %q", strings.TrimSpace(line))
		result.Detections = []Detection{{
			Profile:    profile,
			Confidence: ConfidenceLikely,
			Strategy:   s.Name(),
			Evidence:   strings.TrimSpace(line),
		}}
		return result
	}

	result.Detail = "no Broadcom driver lines in kernel log"
	return result
}

// firmwareDirStrategy matches firmware blob filenames found on the
// local filesystem against chip-family fragments. Multiple distinct
// chips may be reported when multiple firmware files are present;
// callers must handle a non-singleton result.
type firmwareDirStrategy struct {
	cat   *catalog.Catalog
	probe FirmwareDirLister
}

func (s *firmwareDirStrategy) Name() string { return "firmware directory listing" }

func (s *firmwareDirStrategy) TryDetect() StrategyResult {
	result := StrategyResult{Strategy: s.Name()}

	if s.probe == nil {
		result.Skipped = true
		result.Detail = "no firmware directory lister available"
		return result
	}

	files, err := s.probe.ListFirmwareFiles()
	if err != nil {
		result.Skipped = true
		result.Detail = "firmware directories not readable"
		return result
	}

	seen := make(map[string]bool)
	for _, file := range files {
		name := filepath.Base(file)
		profile, ok := s.cat.ByFragment(name)
		if !ok || seen[profile.ChipID] {
			continue
		}
		seen[profile.ChipID] = true
		result.Detections = append(result.Detections, Detection{
			Profile:    profile,
			Confidence: ConfidenceLikely,
			Strategy:   s.Name(),
			Evidence:   file,
		})
	}

	if len(result.Detections) == 0 {
		result.Detail = "no recognizable firmware filenames"
		return result
	}

	result.Detail = fmt.Sprintf("%d firmware file(s) recognized", len(result.Detections))
	return result
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
