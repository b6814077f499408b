package util

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
)

// OwnerDir returns the storage directory name for an owner id. Raw guest ids
// never reach the filesystem.
func OwnerDir(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}

// ObjectKey joins an optional namespace, the owner directory and a leaf name
// into a slash-separated store key.
func ObjectKey(namespace, ownerID, leaf string) string {
	return path.Join(namespace, OwnerDir(ownerID), leaf)
}
