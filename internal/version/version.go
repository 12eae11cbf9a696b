// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Saturn ring events, GRS transits, planet apsides, JSON export
// 0.2.0 - Eclipse classification, equinox/solstice search, TUI day browser
// 0.1.0 - Initial release: sun/moon rise/set, twilights, lunar phases
