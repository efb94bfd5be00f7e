// Package notification models what the dispatcher delivers and how it
// reports on it.
//
// Event is the immutable snapshot built after an order mutation commits.
// ChannelConfig is the startup configuration of one channel. Channels classify
// every failed attempt as *TransientError or *PermanentError, and a delivery
// unit that ends without success is described by *DeliveryError. Delivery
// tracks one unit through its DeliveryState machine.
package notification
