package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/emoup/internal/models"
)

// respondError maps domain error kinds onto HTTP responses. Anything that is
// not a domain kind is an infrastructure failure and comes back as a 500
// without leaking the wrapped detail chain.
func respondError(c *gin.Context, err error) {
	var nf *models.NotFoundError

	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{
			"error":      models.ErrNotFound.Error(),
			"identifier": nf.Identifier,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFound.Error()})
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrAlreadyExists.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})
	case errors.Is(err, models.ErrClassificationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNoEmotionData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": models.ErrNoEmotionData.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
