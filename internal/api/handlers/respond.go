// backend-go/internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP status codes.
// Validation failures come back 400, missing entities 404, and anything
// that reached a database and failed 500 with the underlying message.
func respondError(c *gin.Context, op string, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	var pe *domain.PersistenceError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
	case errors.As(err, &pe):
		log.Error().Err(pe).Str("target", pe.Target).Str("op", op).Msg("persistence failure")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error " + op, "error": pe.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error " + op, "error": err.Error()})
	}
}
