//go:build rp2040

package main

import (
	"machine"
)

// uartPort adapts machine.UART to core.SerialPort.
type uartPort struct {
	uart *machine.UART
}

// newUARTPort configures UART0 on the default pins.
func newUARTPort(baud uint32) *uartPort {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return &uartPort{uart: uart}
}

// Buffered returns the number of received bytes waiting to be read.
func (p *uartPort) Buffered() int {
	return p.uart.Buffered()
}

// ReadByte returns the next received byte.
func (p *uartPort) ReadByte() (byte, error) {
	return p.uart.ReadByte()
}

// Write transmits a response frame.
func (p *uartPort) Write(b []byte) (int, error) {
	return p.uart.Write(b)
}
