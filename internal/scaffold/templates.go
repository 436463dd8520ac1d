package scaffold

import (
	"fmt"
	"strings"

	"github.com/fwkit/bcmfw/internal/catalog"
)

// hookAddresses are the named hook-address placeholders every patch
// build needs. Their values can only be determined by analyzing the
// firmware binary, so they are written as unresolved "0x" fields.
var hookAddresses = []string{
	"WLC_UCODE_WRITE_BL_HOOK_ADDR",
	"HNDRTE_RECLAIM_0_END_PTR",
	"TRAP_HANDLER_HOOK_ADDR",
	"PRINTF_HOOK_ADDR",
}

// renderDefinitions produces the definitions.mk build-configuration
// template. Everything that cannot be known without binary analysis is
// left as an unresolved placeholder.
func renderDefinitions(chipID, versionID, binaryName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Build configuration for %s firmware %s.\n", chipID, versionID)
	b.WriteString("# Fill in the addresses below after analyzing the firmware binary;\n")
	b.WriteString("# they are intentionally left unresolved.\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "CHIP=%s\n", chipID)
	fmt.Fprintf(&b, "CHIP_NUM=%s\n", catalog.ChipNum(chipID))
	fmt.Fprintf(&b, "FW_VERSION=%s\n", versionID)
	fmt.Fprintf(&b, "FW_BINARY=%s\n", binaryName)
	b.WriteString("\n")
	b.WriteString("# Firmware RAM layout\n")
	b.WriteString("RAM_BASE=0x\n")
	b.WriteString("RAM_SIZE=0x\n")
	b.WriteString("\n")
	b.WriteString("# Region reclaimed for patch code\n")
	b.WriteString("PATCH_REGION_BASE=0x\n")
	b.WriteString("PATCH_REGION_SIZE=0x\n")
	b.WriteString("\n")
	b.WriteString("# Hook addresses\n")
	for _, name := range hookAddresses {
		fmt.Fprintf(&b, "%s=0x\n", name)
	}

	return b.String()
}

// renderBuildFile produces the minimal build entry point. The heavy
// lifting lives in the shared rules at the patches root; this file
// only binds the per-firmware configuration to them.
func renderBuildFile() string {
	return "FW_PATCH_ROOT?=../..\n" +
		"\n" +
		"include definitions.mk\n" +
		"include $(FW_PATCH_ROOT)/common.mk\n"
}
