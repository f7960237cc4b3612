// Package otp generates fixed-width numeric one-time codes.
//
// Codes are drawn uniformly from the full digit range, so leading zeros are
// valid output. Generated codes are meant to be persisted with an expiry and
// consumed exactly once.
package otp
