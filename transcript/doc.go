// Package transcript parses WhatsApp chat export files into messages.
//
// Each physical line is parsed independently. Lines that do not match
// the timestamp-prefixed message format, or that match one of the
// exporter's system-notice templates, are silently rejected rather than
// reported as errors.
package transcript
