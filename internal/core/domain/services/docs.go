// Package services contains domain services that coordinate rules spanning
// more than one concept of the model. TransitionPolicy decides which actor
// role class may apply which order status transition, as one auditable
// decision table rather than conditionals scattered through handlers.
package services
