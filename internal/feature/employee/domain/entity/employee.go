// Package entity defines the domain entities for the employee feature.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryScale is the number of fractional digits kept for GajiPokok.
const SalaryScale = 2

// Employee is a civil servant record (pegawai).
type Employee struct {
	ID uint

	// NIP is the Nomor Induk Pegawai, unique across all employees.
	NIP string

	Name          string
	BirthPlace    string
	BirthDate     time.Time
	Sex           Sex
	Religion      string
	MaritalStatus MaritalStatus
	Address       string
	Phone         *string
	Email         *string

	Education string
	Position  string

	// Unit is the unit_kerja (organizational unit), free text.
	Unit string

	Grade    Grade
	Category EmploymentCategory
	HireDate time.Time

	// BaseSalary is gaji_pokok with SalaryScale fractional digits.
	BaseSalary decimal.Decimal

	Status  Status
	Remarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the employee is currently Aktif.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Age returns the completed years between BirthDate and now.
func (e *Employee) Age(now time.Time) int {
	return completedYears(e.BirthDate, now)
}

// YearsOfService returns the completed years between HireDate and now.
func (e *Employee) YearsOfService(now time.Time) int {
	return completedYears(e.HireDate, now)
}

// FormattedSalary renders BaseSalary as rupiah without fractional digits,
// e.g. "Rp 5.250.000".
func (e *Employee) FormattedSalary() string {
	return FormatRupiah(e.BaseSalary)
}

// FormatRupiah formats d with "." as the thousands separator, rounded to whole rupiah.
func FormatRupiah(d decimal.Decimal) string {
	digits := d.Round(0).Abs().String()

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.Round(0).IsNegative() {
		sign = "-"
	}
	return "Rp " + sign + b.String()
}

// Date truncates t to its calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completedYears(from, now time.Time) int {
	if from.IsZero() || now.Before(from) {
		return 0
	}
	years := now.Year() - from.Year()
	if now.Month() < from.Month() || (now.Month() == from.Month() && now.Day() < from.Day()) {
		years--
	}
	return years
}
