// Package config provides user configuration management for the Sponsorhub client.
//
// This package manages a YAML-based configuration file that stores named backend
// profiles (base URL, bearer token, role) plus application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/sponsorhub/config.yaml or $HOME/.config/sponsorhub/config.yaml
//   - macOS: $HOME/.config/sponsorhub/config.yaml
//   - Windows: %LOCALAPPDATA%\sponsorhub\config.yaml
//
// # Security
//
// Bearer tokens are stored with user-only file permissions (0600). Passwords
// are NEVER stored; they are prompted at login and exchanged for a token.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a login on the default profile
//	registry.SetLogin("default", "https://api.example.com", token,
//	    "club", 42, "ASD Ravenna Calcio", "segreteria@example.com")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
