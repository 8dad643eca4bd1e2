//go:build binaryroms

package config

import "github.com/retroenv/c64monitor/internal/listing"

// DefaultMode loads the binary ROM images and verifies the listing against them.
const DefaultMode = listing.Verify
