package util

import (
	"errors"
	"quizfy_backend/internal/model"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	quizTypeTag     = "quiztype"
	questionTypeTag = "questiontype"
	notBlankTag     = "notblank"
)

var translator ut.Translator

// RegisterValidators installs the custom tags and English messages on gin's
// validator. Call it once before the router is built.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	for tag, fn := range map[string]validator.Func{
		quizTypeTag:     validQuizType,
		questionTypeTag: validQuizType,
		notBlankTag:     notBlank,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{quizTypeTag, questionTypeTag, notBlankTag} {
		if err := v.RegisterTranslation(tag, translator, noop, translateCustom); err != nil {
			return err
		}
	}
	return nil
}

func validQuizType(fl validator.FieldLevel) bool {
	switch t := fl.Field().Interface().(type) {
	case model.QuizType:
		return t.Valid()
	case string:
		return model.QuizType(t).Valid()
	}
	return false
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case quizTypeTag:
		return fe.Field() + " must be one of multiple_choice, true_false, file_upload"
	case questionTypeTag:
		return fe.Field() + " must be one of multiple_choice, true_false, file_upload"
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	}
	return fe.Error()
}

// ValidationMessage turns a binding error into a single readable line.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			msgs = append(msgs, fe.Translate(translator))
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}
