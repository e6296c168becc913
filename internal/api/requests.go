package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

const maxJSONBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// badRequest is written as a 400 with its message.
type badRequest struct {
	message string
}

func (e *badRequest) Error() string {
	return e.message
}

// decodeJSON reads a single JSON object into dst and runs the struct validation tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &badRequest{message: "Dados não fornecidos"}
		}
		return &badRequest{message: fmt.Sprintf("JSON inválido: %v", err)}
	}

	if err := validate.Struct(dst); err != nil {
		return &badRequest{message: validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	var missing, invalid []string
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	if len(missing) > 0 {
		return "Campos obrigatórios ausentes: " + strings.Join(missing, ", ")
	}
	return "Campos inválidos: " + strings.Join(invalid, ", ")
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &badRequest{message: "ID inválido"}
	}
	return id, nil
}
