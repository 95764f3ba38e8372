package handler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erp/bcadapter/internal/domain/erp"
	"github.com/erp/bcadapter/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// queryFields maps the query parameters of a listing to entity fields
type queryFields map[string]string

var (
	itemQueryFields      = queryFields{"number": erp.FieldNumber}
	bomHeaderQueryFields = queryFields{"number": erp.FieldNumber}
	bomRowQueryFields    = queryFields{
		"parent_number": erp.FieldParentNumber,
		"position":      erp.FieldPosition,
		"child_number":  erp.FieldChildNumber,
	}
	documentQueryFields = queryFields{
		"number":    erp.FieldNumber,
		"file_name": erp.FieldFileName,
	}
)

// parse turns the URL query into an equality query. A parameter outside
// the mapping is an unsupported filter. Repeated parameters become repeated
// conditions, which the services reject.
func (f queryFields) parse(c *gin.Context) (erp.Query, error) {
	values := c.Request.URL.Query()

	var q erp.Query
	for _, p := range slices.Sorted(maps.Keys(values)) {
		field, ok := f[p]
		if !ok {
			return erp.Query{}, fmt.Errorf("%w: filter on %s", shared.ErrNotSupported, p)
		}
		for _, v := range values[p] {
			q.Conditions = append(q.Conditions, erp.Condition{Field: field, Value: v})
		}
	}
	return q, nil
}
