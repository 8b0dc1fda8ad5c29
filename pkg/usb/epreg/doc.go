// Package epreg drives the status fields of a USB full-speed device
// endpoint control register.
package epreg

// The endpoint register mixes three kinds of bits:
//
//   - STAT_TX/STAT_RX and DTOG_TX/DTOG_RX flip when written 1 and are
//     unchanged when written 0.
//   - CTR_TX/CTR_RX are cleared by writing 0, writing 1 leaves them as-is.
//   - EA, EP_TYPE and EP_KIND are plain read/write, SETUP is read only.
//
// A write is therefore never "the value you want", it is computed from the
// current contents and the desired state. The computation is kept in pure
// functions (ComputeToggleWrite, StatusWrite, ClearCTRWrite) so it can be
// tested without hardware; Endpoint only adds the single read and write.
