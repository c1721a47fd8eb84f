package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campusflow/catalogue-api/pkg/errors"
)

// Envelope is the common response contract. Every catalogue query wraps
// its payload in an "objects" member; errors travel alongside.
type Envelope struct {
	Objects interface{}            `json:"objects"`
	Error   *appErrors.Error       `json:"error,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Objects sends a success response wrapping the payload in the envelope.
// A nil payload serialises as "objects": null, which callers rely on to
// distinguish "filtered out" from an empty list.
func Objects(c *gin.Context, status int, objects interface{}, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	envelope := Envelope{Objects: objects}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, objects interface{}) {
	Objects(c, http.StatusOK, objects)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}
