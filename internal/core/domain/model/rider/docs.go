// Package rider contains the Rider aggregate: a person who applied to carry
// parcels in one service zone, and the review lifecycle of that application.
//
// Application lifecycle:
//
//	Pending ──┬──> Active ──> Inactive
//	          └──> Rejected
//
// Only Active riders can be assigned parcels.
package rider
