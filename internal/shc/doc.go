// Package shc implements the SHC neural-mass model: an 8-variable nonlinear
// dynamical system describing cholinergically modulated hippocampal
// oscillations across three coupled circuits (CA3, CA1, septal cholinergic).
//
// Each state variable relaxes toward a weighted sum of sigmoid firing-rate and
// depression-gated inputs with its own time constant:
//
//	dX_k = (-X_k + Σ drive terms) / τ_k
//
// CA3 recurrent excitation is gated by the CA3 depression variable (rising
// depression terminates population bursts, giving sharp-wave dynamics). CA3
// drives CA1 through the Schaffer projection, itself gated by the CA1
// depression variable. The cholinergic population feeds that CA1 depression
// variable, so high cholinergic tone suppresses ripple propagation into CA1.
//
// The model is pure: Derive reads the immutable parameter set and the state,
// performs no I/O, and lets NaN/Inf propagate per [dynamo.System] semantics.
package shc
