// Package auth issues and validates HS256 bearer tokens and evaluates named
// claim policies over the principals they carry.
//
// Settings, the Issuer, the Validator and the Registry are built once at startup and
// are read-only afterwards.
package auth
