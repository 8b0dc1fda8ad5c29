// Package link moves LED protocol frames over a DMA-driven serial channel.
package link

// One transfer per direction is in flight at a time. Nothing blocks: a call
// either completes immediately or returns ErrWouldBlock and the caller tries
// again on the next interrupt. While a transfer is in flight its buffer
// belongs to the channel and must not be touched.
