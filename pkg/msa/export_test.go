// Let the tests fiddle with the read buffer size, so sequences are
// forced to span buffers.

package msa

var SetFastaRdSize = setFastaRdSize
