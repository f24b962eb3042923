// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Tour auto-pilot, pause, Prometheus metrics endpoint
// 0.2.0 - Follow mode, transient object, fading trails
// 0.1.0 - Initial release: terminal rasterizer, orbit camera, headless summary
