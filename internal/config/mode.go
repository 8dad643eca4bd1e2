//go:build !binaryroms

package config

import "github.com/retroenv/c64monitor/internal/listing"

// DefaultMode populates the ROM from the listing.
const DefaultMode = listing.Burn
