// Package pipeline decorates outbound HTTP requests with the bearer
// credential and trace correlation headers. The stages compose as
// http.RoundTrippers in a fixed order, trace first, then auth.
package pipeline
