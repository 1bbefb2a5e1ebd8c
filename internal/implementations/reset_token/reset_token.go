package resettoken

import (
	"strings"
	"userapi/internal/core/domain/user"

	"github.com/google/uuid"
)

// UUIDGenerator renders random (version 4) UUIDs as 32 lowercase hex characters.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) GenerateResetToken() user.ResetToken {
	return user.ResetToken(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
