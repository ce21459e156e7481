// ABOUTME: Version constants for the sampler
// ABOUTME: Shared by the player and renderer binaries
package version

const (
	// Version is the software version
	Version = "0.1.0"

	// Product is the product name reported on startup
	Product = "sampler"

	// Manufacturer identifies the project
	Manufacturer = "funkfinger"
)
