// Package config loads and validates gateway configuration.
//
// Configuration is merged from, in order of precedence (highest first):
// CLI flags, environment variables prefixed S3GATE_, config files, and
// built-in defaults. The document describes the backend accounts with their
// credentials and owned buckets, the users with their API keys, roles, and
// permitted bucket patterns, plus the server bind address and payload and
// rate ceilings.
package config
