package helper

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"news-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	msgInternalError = "Internal server error"
	msgInvalidBody   = "Invalid request body"
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Log        logrus.FieldLogger
}

// NewHTTPHelper builds a helper with English validation messages.
func NewHTTPHelper(log logrus.FieldLogger) (*HTTPHelper, error) {
	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")

	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
		Log:        log,
	}, nil
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		notFound     models.ErrorNotFound
		badRequest   models.ErrorBadRequest
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		conflict     models.ErrorConflict
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendError ...
// Send an error body to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// HandleError maps err to a response. Anything that is not a client error is
// logged with detail and answered with a generic message.
func (u *HTTPHelper) HandleError(c *gin.Context, err error) {
	code := u.GetStatusCode(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		u.Log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		u.SendError(c, code, msgInternalError)
		return
	}
	u.SendError(c, code, err.Error())
}

// BindJSON decodes the request body into obj and validates it. It writes the
// error response itself and reports whether the handler may continue.
func (u *HTTPHelper) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		u.SendError(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if err := u.Validate.Struct(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendError(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":  "Validation failed",
		"fields": errorResponse,
	})
}

// Underscore converts a Go field name to snake_case.
func Underscore(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
