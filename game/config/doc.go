// Package config provides room configuration management for SweepBot.
//
// The config package handles:
//   - Loading room configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Room configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Room layout using character mapping (S=dock, X=obstacle, R=recharge, L=litter)
//   - Energy parameters (max capacity, starting amount)
//   - Game messages for various events
//   - Victory and game-over conditions
//
// Available Configurations:
//
// The package ships with rooms of increasing difficulty:
//   - office: Balanced 6x10 room used as the default
//   - corridor: Narrow room where recharge timing matters
//   - warehouse: Large room with sparse recharge pads
//
// Usage:
//
//	manager := config.NewManager("configs")
//
//	// Load specific configuration
//	roomConfig, err := manager.LoadConfig("office")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Proper room dimensions and layout
//   - Valid cell types and legend mappings
//   - Required message templates
//   - Energy parameter constraints
//   - Full sweepability under the configured max energy
package config
