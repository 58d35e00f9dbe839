// File: yamlhandler/doc.go

// Package yamlhandler provides a mutable, path-addressable configuration tree
// with order-preserving YAML (and TOML) round-tripping, comment retention,
// and pluggable object serialization.
//
// Features:
//   - Dotted-path access to arbitrarily nested values ("server.host.name")
//   - Insertion order preserved end to end, from document to dump
//   - Explicit-null nodes distinguished from absent nodes (NullValue)
//   - Block and inline comments carried through load and dump
//   - Custom serializers storing typed objects as node subtrees
//   - Struct decoding of any subtree via mapstructure
//   - Builder pattern loader with swappable document codecs
//   - Append-only file saves that never truncate existing content
//
// Quick Start:
//
//	loader := yamlhandler.NewLoader().WithSeparator('.')
//	cfg, err := loader.LoadFile("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.String("server.host")
//	port, _ := cfg.Int64("server.port")
//
//	cfg.Set("server.port", 9090)
//	cfg.SetComment("server.port", "changed at runtime", true)
//	err = cfg.Save("config.yml")
//
// Concurrency:
//
// Configurations and their sections are not synchronized. Confine a tree to a
// single goroutine, or guard whole read-modify-write sequences externally.
package yamlhandler
