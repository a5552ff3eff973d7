package platform

// Package platform contains OS integration glue: downloads directory
// discovery, output directory validation, and revealing completed files in
// the system file manager.
