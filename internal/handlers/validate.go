package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// useFormNames makes validation errors report the form field name instead of
// the Go struct field.
func useFormNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

var fieldLabels = map[string]string{
	"employee_id":   "ID pekerja",
	"password":      "Kata sandi",
	"name":          "Nama",
	"email":         "Email",
	"role":          "Peran",
	"asset_id":      "Aset",
	"description":   "Deskripsi kerusakan",
	"asset_code":    "Kode aset",
	"location":      "Lokasi",
	"asset_type_id": "Tipe aset",
	"status":        "Status",
	"issue":         "Kendala",
	"response":      "Tanggapan",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " wajib diisi."
	case "min":
		return fmt.Sprintf("%s minimal %s karakter.", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter.", name, fe.Param())
	case "email":
		return "Format email tidak valid."
	case "oneof":
		return name + " tidak valid."
	default:
		return name + " tidak valid."
	}
}

// bindForm binds the request form into dst and returns per-field messages.
// The map is empty, never nil, when everything is valid.
func bindForm(c *gin.Context, dst any) map[string]string {
	useFormNames()
	fields := map[string]string{}

	err := c.ShouldBind(dst)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
		return fields
	}

	fields["_form"] = msgInvalid
	return fields
}
