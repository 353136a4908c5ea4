package validator

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gymstudio/internal/pkg/response"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	configure(validate)

	// gin validates bodies with its own engine; give it the same rules and field names.
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(engine)
	}
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Validate struct fields. Keys are JSON field names, values the failed rule.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	return fieldErrors(err)
}

func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out[fe.Field()] = rule
	}
	return out
}

// BindJSON decodes and validates the body. On failure it has already written
// the error envelope and the caller must return.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields := fieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return false
		}
		response.InvalidJSON(c)
		return false
	}
	return true
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		if fields := fieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return false
		}
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters")
		return false
	}
	return true
}
