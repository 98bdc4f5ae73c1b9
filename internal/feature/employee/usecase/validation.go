package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"simpeg_backend/internal/feature/employee/domain"
	"simpeg_backend/internal/feature/employee/domain/entity"
)

// maxSalary は numeric(15,2) に収まる上限（排他的）です。
var maxSalary = decimal.New(1, 13)

// EmployeeInput は作成・更新フォームの入力値です。
// 値は未加工の文字列で受け取り、検証後に entity.Employee へ変換されます。
type EmployeeInput struct {
	NIP           string `field:"nip" validate:"required,max=20"`
	Name          string `field:"nama" validate:"required,max=255"`
	BirthPlace    string `field:"tempat_lahir" validate:"required,max=255"`
	BirthDate     string `field:"tanggal_lahir" validate:"required,calendar_date"`
	Sex           string `field:"jenis_kelamin" validate:"required,sex"`
	Religion      string `field:"agama" validate:"required,max=255"`
	MaritalStatus string `field:"status_kawin" validate:"required,marital_status"`
	Address       string `field:"alamat" validate:"required"`
	Phone         string `field:"telepon" validate:"omitempty,max=20"`
	Email         string `field:"email" validate:"omitempty,email,max=255"`
	Education     string `field:"pendidikan_terakhir" validate:"required,max=255"`
	Position      string `field:"jabatan" validate:"required,max=255"`
	Unit          string `field:"unit_kerja" validate:"required,max=255"`
	Grade         string `field:"golongan" validate:"required,grade"`
	Category      string `field:"status_pegawai" validate:"required,employment_category"`
	HireDate      string `field:"tanggal_masuk" validate:"required,calendar_date"`
	BaseSalary    string `field:"gaji_pokok" validate:"required,money"`
	Status        string `field:"status" validate:"omitempty,employee_status"`
	Remarks       string `field:"keterangan"`
}

func (in EmployeeInput) trimmed() EmployeeInput {
	v := reflect.ValueOf(&in).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
	return in
}

var fieldLabels = map[string]string{
	"nip":                 "NIP",
	"nama":                "Nama pegawai",
	"tempat_lahir":        "Tempat lahir",
	"tanggal_lahir":       "Tanggal lahir",
	"jenis_kelamin":       "Jenis kelamin",
	"agama":               "Agama",
	"status_kawin":        "Status perkawinan",
	"alamat":              "Alamat",
	"telepon":             "Telepon",
	"email":               "Email",
	"pendidikan_terakhir": "Pendidikan terakhir",
	"jabatan":             "Jabatan",
	"unit_kerja":          "Unit kerja",
	"golongan":            "Golongan",
	"status_pegawai":      "Status kepegawaian",
	"tanggal_masuk":       "Tanggal masuk kerja",
	"gaji_pokok":          "Gaji pokok",
	"status":              "Status pegawai",
	"keterangan":          "Keterangan",
}

// selectFields are chosen from a list, so "required" reads "wajib dipilih".
var selectFields = map[string]bool{
	"jenis_kelamin":  true,
	"status_kawin":   true,
	"golongan":       true,
	"status_pegawai": true,
	"status":         true,
}

// customMessages override the generated message for field.tag pairs.
var customMessages = map[string]string{
	"jenis_kelamin.sex": "Jenis kelamin harus L (Laki-laki) atau P (Perempuan).",
	"email.email":       "Format email tidak valid.",
	"gaji_pokok.money":  "Gaji pokok harus berupa angka.",
}

const (
	msgBirthDateNotPast = "Tanggal lahir harus sebelum hari ini."
	msgHireDateInFuture = "Tanggal masuk kerja tidak boleh lebih dari hari ini."
	msgSalaryNegative   = "Gaji pokok tidak boleh kurang dari 0."
	msgSalaryTooLarge   = "Gaji pokok melebihi batas maksimum."
)

func required(field string) string {
	if selectFields[field] {
		return fieldLabels[field] + " wajib dipilih."
	}
	return fieldLabels[field] + " wajib diisi."
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := customMessages[field+"."+fe.Tag()]; ok {
		return msg
	}
	label := fieldLabels[field]
	switch fe.Tag() {
	case "required":
		return required(field)
	case "max":
		return fmt.Sprintf("%s tidak boleh lebih dari %s karakter.", label, fe.Param())
	case "calendar_date":
		return label + " bukan tanggal yang valid."
	default:
		return label + " tidak valid."
	}
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return entity.Date(t), true
	}
	return time.Time{}, false
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})

	enum := func(valid func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool { return valid(fl.Field().String()) }
	}
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("sex", enum(func(s string) bool { _, ok := entity.ParseSex(s); return ok })))
	must(v.RegisterValidation("marital_status", enum(func(s string) bool { _, ok := entity.ParseMaritalStatus(s); return ok })))
	must(v.RegisterValidation("grade", enum(func(s string) bool { _, ok := entity.ParseGrade(s); return ok })))
	must(v.RegisterValidation("employment_category", enum(func(s string) bool { _, ok := entity.ParseEmploymentCategory(s); return ok })))
	must(v.RegisterValidation("employee_status", enum(func(s string) bool { _, ok := entity.ParseStatus(s); return ok })))
	must(v.RegisterValidation("calendar_date", enum(func(s string) bool { _, ok := parseDate(s); return ok })))
	must(v.RegisterValidation("money", enum(func(s string) bool { _, err := decimal.NewFromString(s); return err == nil })))
	return v
}

// validate は入力を検証し、成功時に永続化前の entity.Employee を返します。
// 検証エラーはフィールドごとに集約され *domain.ValidationError として返されます。
// excludeID は nip の重複確認から除外する職員IDです（作成時は0）。
func (u *employeeUsecase) validate(ctx context.Context, raw EmployeeInput, excludeID uint, requireStatus bool) (*entity.Employee, error) {
	in := raw.trimmed()
	ve := domain.NewValidationError()

	if err := u.validator.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate employee input: %w", err)
		}
		for _, fe := range fieldErrs {
			ve.Add(fe.Field(), messageFor(fe))
		}
	}
	if requireStatus && in.Status == "" && !ve.Has("status") {
		ve.Add("status", required("status"))
	}

	today := entity.Date(u.clock.Now())

	var birth, hire time.Time
	if !ve.Has("tanggal_lahir") {
		birth, _ = parseDate(in.BirthDate)
		if !birth.Before(today) {
			ve.Add("tanggal_lahir", msgBirthDateNotPast)
		}
	}
	if !ve.Has("tanggal_masuk") {
		hire, _ = parseDate(in.HireDate)
		if hire.After(today) {
			ve.Add("tanggal_masuk", msgHireDateInFuture)
		}
	}

	var salary decimal.Decimal
	if !ve.Has("gaji_pokok") {
		parsed := decimal.RequireFromString(in.BaseSalary)
		salary = parsed.Round(entity.SalaryScale)
		switch {
		case parsed.IsNegative():
			ve.Add("gaji_pokok", msgSalaryNegative)
		case salary.GreaterThanOrEqual(maxSalary):
			ve.Add("gaji_pokok", msgSalaryTooLarge)
		}
	}

	if !ve.Has("nip") {
		taken, err := u.repo.ExistsByNIP(ctx, in.NIP, excludeID)
		if err != nil {
			return nil, fmt.Errorf("check nip uniqueness: %w", err)
		}
		if taken {
			ve.Add("nip", domain.MsgNIPTaken)
		}
	}

	if !ve.Empty() {
		return nil, ve
	}

	status := entity.DefaultStatus
	if in.Status != "" {
		status = entity.Status(in.Status)
	}

	return &entity.Employee{
		NIP:           in.NIP,
		Name:          in.Name,
		BirthPlace:    in.BirthPlace,
		BirthDate:     birth,
		Sex:           entity.Sex(in.Sex),
		Religion:      in.Religion,
		MaritalStatus: entity.MaritalStatus(in.MaritalStatus),
		Address:       in.Address,
		Phone:         optional(in.Phone),
		Email:         optional(in.Email),
		Education:     in.Education,
		Position:      in.Position,
		Unit:          in.Unit,
		Grade:         entity.Grade(in.Grade),
		Category:      entity.EmploymentCategory(in.Category),
		HireDate:      hire,
		BaseSalary:    salary,
		Status:        status,
		Remarks:       optional(in.Remarks),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
