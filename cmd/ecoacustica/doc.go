// Package main hosts the ecoacustica CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into workflow
// calls: session management, recording submission through the processing
// pipeline, record collection queries, and configuration scaffolding. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
