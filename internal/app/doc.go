// Package app wires the SDK for the command line. It defines the App struct,
// its configuration, and the catalog, evaluation and conversion workflows,
// decoupled from any specific entrypoint.
package app
