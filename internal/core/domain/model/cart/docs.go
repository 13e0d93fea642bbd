// Package cart provides the per-customer shopping cart aggregate.
//
// The package includes:
//   - Cart: the aggregate root keyed by customer identity
//   - Item: a value object for one selected dish with its unit price
//
// Key business rules:
//   - A cart is created lazily on the first add for a customer
//   - Adding a dish already present coalesces into one line by incrementing quantity
//   - Removing an absent dish is a no-op
//   - Checkout drains the items but never deletes the cart row
package cart
