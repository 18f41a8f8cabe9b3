// Package access decides whether a requester may read or mutate a file
// record. Decisions are pure functions of the requester identity and
// the record; a nil requester is an anonymous caller.
package access

import (
	"github.com/filevault/backend/internal/models"
	"github.com/google/uuid"
)

// CanRead allows public records for anyone, private records only for
// their owner.
func CanRead(requesterID *uuid.UUID, f *models.File) bool {
	if f == nil {
		return false
	}
	if f.IsPublic {
		return true
	}
	return requesterID != nil && *requesterID == f.OwnerID
}

// CanWrite allows mutation only for the owner. Anonymous callers never
// pass.
func CanWrite(requesterID *uuid.UUID, f *models.File) bool {
	if f == nil {
		return false
	}
	return requesterID != nil && *requesterID == f.OwnerID
}
