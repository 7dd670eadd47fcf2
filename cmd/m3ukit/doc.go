// Package main hosts the m3ukit CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into playlist
// operations: keyword extraction, the two merge policies, redirect
// resolution, and configuration scaffolding. It centralizes configuration
// resolution, logger setup, and the safe-output contract so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
