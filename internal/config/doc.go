// Package config loads spacesync settings from SPACESYNC_* environment
// variables and builds the process logger from them.
package config
