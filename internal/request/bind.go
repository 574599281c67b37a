package request

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// BindStrict decodes a JSON body rejecting unknown fields, so partial
// updates fail loudly instead of silently dropping misspelled keys.
func BindStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
