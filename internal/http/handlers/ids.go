package handlers

import "github.com/google/uuid"

func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
