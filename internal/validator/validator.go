package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	// bcrypt recusa senhas acima de 72 bytes, não runas.
	maxPasswordBytes  = 72
	minPasswordLength = 8
	maxUsernameLength = 150
	maxTitleLength    = 256
	maxCommentLength  = 2000
)

// Formatos aceitos para a data de publicação: o do input datetime-local e a data pura.
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("bcrypt", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	_ = validate.RegisterValidation("pubdate", func(fl validator.FieldLevel) bool {
		_, err := ParsePubDate(fl.Field().String())
		return err == nil
	})
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r ValidationResult) Message() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, " ")
}

// FieldError devolve a mensagem do campo, ou vazio se ele passou.
func (r ValidationResult) FieldError(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

type PostInput struct {
	Title       string `validate:"required,max=256"`
	Text        string `validate:"required"`
	PubDate     string `validate:"required,pubdate"`
	LocationID  int64  `validate:"gte=0"`
	CategoryID  int64  `validate:"gte=0"`
	IsPublished bool
}

type CommentInput struct {
	Text string `validate:"required,max=2000"`
}

type ProfileInput struct {
	Username  string `validate:"required,max=150,username"`
	Email     string `validate:"omitempty,email,max=254"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
}

type RegistrationInput struct {
	Username string `validate:"required,max=150,username"`
	Email    string `validate:"omitempty,email,max=254"`
	Password string `validate:"required,min=8,bcrypt"`
}

// Validate roda as regras das tags e traduz os erros para mensagens por campo.
func Validate(s any) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	err := validate.Struct(s)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: "", Message: err.Error()})
		return result
	}

	result.Valid = false
	for _, fe := range verrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName(fe.Field()),
			Message: message(fe),
		})
	}
	return result
}

func fieldName(structField string) string {
	switch structField {
	case "PubDate":
		return "pub_date"
	case "LocationID":
		return "location"
	case "CategoryID":
		return "category"
	case "IsPublished":
		return "is_published"
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	default:
		return strings.ToLower(structField)
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "max":
		return fmt.Sprintf("Не более %s символов.", fe.Param())
	case "min":
		return fmt.Sprintf("Не менее %s символов.", fe.Param())
	case "email":
		return "Введите правильный адрес электронной почты."
	case "username":
		return "Допустимы только буквы, цифры и символы @/./+/-/_."
	case "pubdate":
		return "Введите правильную дату и время."
	case "bcrypt":
		return fmt.Sprintf("Пароль не может быть длиннее %d байт.", maxPasswordBytes)
	default:
		return "Некорректное значение."
	}
}

// ParsePubDate interpreta a data do formulário em UTC.
func ParsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data de publicação inválida: %q", s)
}
