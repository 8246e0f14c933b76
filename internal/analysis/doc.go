// Package analysis provides spectral analysis of simulated traces and
// parameter sweeps over the cholinergic operating point.
package analysis
