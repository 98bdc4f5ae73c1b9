// Package dto はemployeeフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"simpeg_backend/internal/feature/employee/usecase"
)

var errNotScalar = errors.New("value must be a string, number or null")

// Scalar はJSONの文字列・数値・nullを受け付ける入力値です。
// 数値は元の表記のまま文字列として保持し、nullは空文字になります。
// 数値として不正な値はバインド時ではなく検証時にフィールド単位のエラーとして報告されます。
// オブジェクトと配列はリクエスト自体が不正として扱われます。
type Scalar string

// UnmarshalJSON は json.Unmarshaler を実装します。
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errNotScalar
	default:
		*s = Scalar(b)
	}
	return nil
}

// EmployeeReq は POST /employees と PUT /employees/:id のリクエストボディです。
type EmployeeReq struct {
	NIP                Scalar `json:"nip"`
	Nama               Scalar `json:"nama"`
	TempatLahir        Scalar `json:"tempat_lahir"`
	TanggalLahir       Scalar `json:"tanggal_lahir"`
	JenisKelamin       Scalar `json:"jenis_kelamin"`
	Agama              Scalar `json:"agama"`
	StatusKawin        Scalar `json:"status_kawin"`
	Alamat             Scalar `json:"alamat"`
	Telepon            Scalar `json:"telepon"`
	Email              Scalar `json:"email"`
	PendidikanTerakhir Scalar `json:"pendidikan_terakhir"`
	Jabatan            Scalar `json:"jabatan"`
	UnitKerja          Scalar `json:"unit_kerja"`
	Golongan           Scalar `json:"golongan"`
	StatusPegawai      Scalar `json:"status_pegawai"`
	TanggalMasuk       Scalar `json:"tanggal_masuk"`
	GajiPokok          Scalar `json:"gaji_pokok"`
	Status             Scalar `json:"status"`
	Keterangan         Scalar `json:"keterangan"`
}

// ToInput はリクエストをユースケースの入力に変換します。
func (r EmployeeReq) ToInput() usecase.EmployeeInput {
	return usecase.EmployeeInput{
		NIP:           string(r.NIP),
		Name:          string(r.Nama),
		BirthPlace:    string(r.TempatLahir),
		BirthDate:     string(r.TanggalLahir),
		Sex:           string(r.JenisKelamin),
		Religion:      string(r.Agama),
		MaritalStatus: string(r.StatusKawin),
		Address:       string(r.Alamat),
		Phone:         string(r.Telepon),
		Email:         string(r.Email),
		Education:     string(r.PendidikanTerakhir),
		Position:      string(r.Jabatan),
		Unit:          string(r.UnitKerja),
		Grade:         string(r.Golongan),
		Category:      string(r.StatusPegawai),
		HireDate:      string(r.TanggalMasuk),
		BaseSalary:    string(r.GajiPokok),
		Status:        string(r.Status),
		Remarks:       string(r.Keterangan),
	}
}
