// Package transport provides the I2C and UART links to the module.
package transport
