// Package motion composes the state transition functions used by the
// particle filter: a damped linear model covering all tracked bodies,
// plus an auxiliary Brownian random-walk model.
package motion
