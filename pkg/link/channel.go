package link

// Channel is the serial substrate: a USART paired with one DMA channel per
// direction. Completion is signalled by interrupts outside this interface;
// the interrupt handlers call back into Serial and Transfer.
type Channel interface {
	// StartTransmit starts transmitting p and returns the number of bytes
	// taken, which is at least 1 for a non-empty p and may be less than
	// len(p) when the DMA count is limited. p[:n] belongs to the channel
	// until the transmit-complete interrupt.
	StartTransmit(p []byte) int
	// AckTransmit clears the transmit-complete flag.
	AckTransmit()
	// StartReceive arms a receive of exactly len(p) bytes into p.
	StartReceive(p []byte)
	// ReceiveRemaining returns the number of bytes the armed receive still
	// waits for.
	ReceiveRemaining() int
	// AckReceive clears the receive-complete flag.
	AckReceive()
}
