// Package config loads linemark settings.
//
// Settings are kept as nested maps in four layers, higher layers
// overriding lower ones:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← LINEMARK_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← .toml or .yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Section accessors (Logging, Highlight, Brackets, Editor) return typed
// snapshots of the merged view. Validate checks enum values and compiles
// custom rules, and RuleTable, Theme and Adjacency turn the settings into
// the objects the engine is built from.
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("linemark.toml"))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	table, err := cfg.RuleTable(highlight.DefaultRegistry(), filename, content)
package config
