// Package kernel provides the value objects shared by every aggregate of the
// parcel service.
//
// The package includes:
//   - UUID: identifier of parcels, riders, tracking entries and cashouts
//   - Email: normalized actor and party identity
//   - Zone: a service area (region, district) used for same-zone pricing
//   - Money: a non-negative decimal amount in BDT
//
// All values are immutable. Zero values are invalid and fail Validate, so a
// value can only come from its constructor.
package kernel
