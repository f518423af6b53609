// Package config loads chanlog.toml, the project-wide settings file, and
// applies it to an engine.
//
// The file is found by walking up from the working directory, the same way
// go.mod is found. Keys absent from the file keep their built-in defaults.
//
// Не делает: горячей перезагрузки; Apply only pushes a snapshot.
package config
