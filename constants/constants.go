package constants

import "os"

func GetServeAddr() string {
	addr := os.Getenv("BEAMLINE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetMetadataTable() string {
	table := os.Getenv("BEAMLINE_METADATA_TABLE")
	if table != "" {
		return table
	}
	return "beamline-metadata"
}

// The rhythmic grid is sixteenths.
const UnitsPerWholeNote = 16

// Staff step just above the middle line. Subgroups whose average note
// height sits at or below it take an up stem.
const StemThresholdHeight = 6.5
