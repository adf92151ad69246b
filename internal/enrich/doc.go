// Package enrich asks a generative text model for academic data about
// vocabulary words. Calls pass through a fixed-window rate limiter and the
// loosely formatted replies are cleaned up before they are decoded.
package enrich
