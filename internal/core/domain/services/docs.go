// Package services provides the domain services of the parcel service: the
// logic that does not belong to a single aggregate.
//
// The package includes:
//   - PricingEngine: quotes a parcel from its type, weight and zones
//   - DeliveryWorkflow: applies delivery-status transitions and produces their tracking log entries
//   - EarningsPolicy: projects rider earnings from delivered parcels
//   - RiderDispatcher: picks the rider a Processing parcel is assigned to
//
// All services are pure: they never perform I/O and are safe for concurrent use.
package services
