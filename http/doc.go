// Package http provides the gateway's REST surface.
//
// Routes:
//
//	GET /{bucket}?prefix=   list objects (XML ListBucketResult)
//	GET /{bucket}/{key}     fetch raw object bytes
//	PUT /{bucket}/{key}     store object
//
// Every request must carry an x-api-key header. The admission middleware runs
// structural validation, identity resolution, and rate limiting before any
// handler; handlers delegate authorization and routing to the gateway
// service. Security headers are injected on every response, including errors.
package http
