// Package parcel contains the Parcel aggregate and its value objects.
//
// A parcel is booked by a sender in Processing, assigned to a rider by
// dispatch, picked up and delivered by that rider, paid by the sender and
// finally cashed out by the rider. Delivery status only ever moves forward
// along Processing → Rider Assigned → In Transit → Delivered; every other
// request is an illegal transition and leaves the parcel unchanged.
//
// The price is fixed when the parcel is booked and the aggregate exposes no
// way to change it afterwards.
package parcel
