package handlers

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// parseParentID coerces the parentId field of an upload body. Clients
// send the root sentinel as the number 0, the string "0", an empty
// string or by omitting the field; anything else must be a record id.
func parseParentID(raw any) (*uuid.UUID, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case float64:
		if v == 0 {
			return nil, true
		}
		return nil, false
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || trimmed == "0" {
			return nil, true
		}
		parsed, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, false
		}
		return &parsed, true
	default:
		return nil, false
	}
}

// parsePage treats non-numeric input as the first page and clamps
// negatives.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}
