package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// GenerateTicketNumber returns a collision-resistant ticket number with the
// legacy TICKET- prefix kept for downstream consumers.
func GenerateTicketNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TICKET-%s", suffix)
}
