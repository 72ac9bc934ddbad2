package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/Vinayyy19/Furnista/common/errors"
	"github.com/Vinayyy19/Furnista/common/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	MaxPageSize   = 100
	MaxUploadSize = 10 << 20
)

// RegisterValidators installs the custom binding tags on gin's validator and
// reports fields by their json name.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
}

// bindingError turns a binding failure into a validation error naming the
// first offending field.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation("Invalid request body")
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "objectid":
		msg = fmt.Sprintf("%s must be a valid id", fe.Field())
	case "email":
		msg = fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperrors.Validation(msg)
}

// ParsePagination reads page and limit, defaulting to 1 and 10 and capping
// limit at MaxPageSize.
func ParsePagination(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		return 0, 0, apperrors.Validation("Invalid page number")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		return 0, 0, apperrors.Validation("Invalid page size")
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, nil
}

func parseObjectID(value, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("Invalid " + what + " id")
	}
	return id, nil
}

func currentUser(c *gin.Context) (string, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}
