package ginfields

import (
	"errors"
	"io"
	"net/http"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/gin-gonic/gin"
	"github.com/untillpro/goutils/logger"
)

// RecordKey is the gin context key holding the validated record.
const RecordKey = "validated_record"

// Failure is the body of a 400 answer.
type Failure struct {
	Error   string                    `json:"error"`
	Details document.ValidationErrors `json:"details,omitempty"`
}

// Bind returns middleware that decodes the JSON body, fills in defaults and
// validates the result against schema.
//
// Malformed or rejected bodies are answered with 400 and the violations.
// A misconfigured schema is answered with 500. On success the record is
// stored under RecordKey; handlers read it with GetRecord.
func Bind(schema *document.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, Failure{Error: "failed to read request body"})
			return
		}

		rec, err := schema.DecodeJSON(body)
		if err == nil {
			rec = schema.ApplyDefaults(rec)
			err = schema.Validate(rec)
		}
		if err != nil {
			reject(c, schema, err)
			return
		}
		c.Set(RecordKey, rec)
		c.Next()
	}
}

func reject(c *gin.Context, schema *document.Schema, err error) {
	var errs document.ValidationErrors
	if !errors.As(err, &errs) {
		logger.Error("schema", schema.Name(), "is misconfigured:", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "schema misconfigured"})
		return
	}
	if logger.IsVerbose() {
		logger.Verbose(c.Request.Method, c.Request.URL.Path, "rejected:", errs.Error())
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, Failure{Error: "validation failed", Details: errs})
}

// GetRecord returns the record stored by Bind.
func GetRecord(c *gin.Context) (document.Record, bool) {
	val, exists := c.Get(RecordKey)
	if !exists {
		return nil, false
	}
	rec, ok := val.(document.Record)
	return rec, ok
}
