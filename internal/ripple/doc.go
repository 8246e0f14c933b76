// Package ripple detects sharp-wave-ripple events in an oscillatory signal.
//
// The pipeline rectifies the signal into a power proxy, smooths it into an
// amplitude envelope (short moving-average RMS window, then a long unit-area
// Gaussian window), thresholds the envelope at median + k*stddev computed once
// over the whole trace, and segments supra-threshold runs into discrete
// events with a minimum-duration rule.
//
// Segmentation is a strictly sequential two-state cursor machine (scanning /
// inside-event); events come out with strictly increasing starts and never
// overlap because scanning resumes at the end of each confirmed event.
package ripple
