// Package overlay draws the on-screen tracker readout: the entries of a
// tracker.Set rendered into a lipgloss panel for terminal output.
package overlay
