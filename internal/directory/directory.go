// Package directory is the key-existence collaborator the handlers consult
// before invoking the engine. It never synthesizes anything: it only answers
// whether a key is known, so "not found" is decided one layer above the
// engine and the engine never needs an unknown-entity case.
package directory

import "context"

//go:generate mockgen -source=directory.go -destination=mocks/directory_mocks.go -package=mocks Directory

// Directory answers existence checks for a (kind, key) pair.
type Directory interface {
	Exists(ctx context.Context, kind, key string) (bool, error)
}
