// Package protocol implements the command protocol of the speech synthesis
// module.
package protocol

// Every command sent to the module is a frame:
//
//	0xFD | length(2 bytes, big-endian) | command | data...
//
// where length counts the command byte and the data. Text to be spoken
// is sent with the start synthesis command and the first data byte
// selects the text encoding. Voice settings (volume, speed, ...) are not
// separate commands: they are bracketed escape sequences like "[v5]"
// spoken through the same synthesis command.
//
// The module replies with single status bytes. 0x41 ('A') when playback
// starts and 0x4F ('O') when it's idle again. It never reports completion
// on its own, so the host polls with the status inquiry frame until the
// idle byte shows up. The module has no command queue: a new frame must
// not be sent before the previous one completed.
