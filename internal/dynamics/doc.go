// Package dynamics implements planar rigid-body dynamics for a serial
// chain: the recursive Newton-Euler inverse dynamics, the derived mass
// matrix and bias vector, and the forward-dynamics solve
//
//	M(q)·ddq + bias(q, dq, g) = tau
//
// All angular quantities are scalars (rotation about the base z axis);
// linear quantities are base-frame [arm.Vec2] values. Gravity is an
// explicit parameter on every entry point; [DefaultGravity] is only a
// convenient value, never hidden state.
//
// The mass matrix and bias vector are built by probing inverse
// dynamics (N+1 recursions per forward-dynamics call). This trades
// asymptotic performance for one authoritative recursion; the
// numerical contracts (symmetry, parallel-axis closed form, round-trip
// torque consistency, energy consistency) are pinned by the package
// tests.
package dynamics
