// Package estimator produces the flight.StateVector once per control tick.
//
// Two mutually exclusive strategies share one output:
//
//   - [PassThrough]: reprojects an externally computed pose and velocity
//   - [Observe]: a fixed-gain observer that integrates a hover-linearized
//     model and corrects it with flow and range residuals
//
// The strategy is picked each tick from the runtime [Flags]; the feedback
// law downstream never knows which one ran.
package estimator
