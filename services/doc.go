// Package services implements the shop's use cases over the repositories:
// the customer catalog, catalog administration, and promo codes.
package services
