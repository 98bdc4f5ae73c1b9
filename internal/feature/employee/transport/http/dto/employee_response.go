package dto

import (
	"time"

	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/feature/employee/usecase"
	"simpeg_backend/internal/shared/access"
	"simpeg_backend/internal/shared/pagination"
)

// EmployeeResponse は職員1件のレスポンスDTOです。
type EmployeeResponse struct {
	ID                 uint    `json:"id"`
	NIP                string  `json:"nip"`
	Nama               string  `json:"nama"`
	TempatLahir        string  `json:"tempat_lahir"`
	TanggalLahir       string  `json:"tanggal_lahir"` // YYYY-MM-DD
	JenisKelamin       string  `json:"jenis_kelamin"`
	Agama              string  `json:"agama"`
	StatusKawin        string  `json:"status_kawin"`
	Alamat             string  `json:"alamat"`
	Telepon            *string `json:"telepon"`
	Email              *string `json:"email"`
	PendidikanTerakhir string  `json:"pendidikan_terakhir"`
	Jabatan            string  `json:"jabatan"`
	UnitKerja          string  `json:"unit_kerja"`
	Golongan           string  `json:"golongan"`
	StatusPegawai      string  `json:"status_pegawai"`
	TanggalMasuk       string  `json:"tanggal_masuk"` // YYYY-MM-DD
	GajiPokok          string  `json:"gaji_pokok"`    // 小数点以下2桁の10進文字列
	Status             string  `json:"status"`
	Keterangan         *string `json:"keterangan"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`

	// 派生値
	Usia               int    `json:"usia"`
	MasaKerja          int    `json:"masa_kerja"`
	GajiPokokFormatted string `json:"gaji_pokok_formatted"`
}

// NewEmployeeResponse はエンティティをレスポンスDTOに変換します。
// 年齢と勤続年数は now 時点で計算されます。
func NewEmployeeResponse(e *entity.Employee, now time.Time) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		NIP:                e.NIP,
		Nama:               e.Name,
		TempatLahir:        e.BirthPlace,
		TanggalLahir:       e.BirthDate.Format(time.DateOnly),
		JenisKelamin:       string(e.Sex),
		Agama:              e.Religion,
		StatusKawin:        string(e.MaritalStatus),
		Alamat:             e.Address,
		Telepon:            e.Phone,
		Email:              e.Email,
		PendidikanTerakhir: e.Education,
		Jabatan:            e.Position,
		UnitKerja:          e.Unit,
		Golongan:           string(e.Grade),
		StatusPegawai:      string(e.Category),
		TanggalMasuk:       e.HireDate.Format(time.DateOnly),
		GajiPokok:          e.BaseSalary.StringFixed(entity.SalaryScale),
		Status:             string(e.Status),
		Keterangan:         e.Remarks,
		CreatedAt:          e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          e.UpdatedAt.UTC().Format(time.RFC3339),
		Usia:               e.Age(now),
		MasaKerja:          e.YearsOfService(now),
		GajiPokokFormatted: e.FormattedSalary(),
	}
}

// ListOptions は一覧画面の絞り込み選択肢です。
type ListOptions struct {
	UnitKerja     []string `json:"unit_kerja"`
	Status        []string `json:"status"`
	StatusPegawai []string `json:"status_pegawai"`
}

// EmployeeListResponse は GET /employees のレスポンスDTOです。
type EmployeeListResponse struct {
	Data []EmployeeResponse `json:"data"`
	pagination.Meta
	Links   []pagination.Link    `json:"links"`
	Filters map[string]string    `json:"filters"`
	Options ListOptions          `json:"options"`
	Can     access.CapabilitySet `json:"can"`
}

// NewEmployeeListResponse は一覧結果をレスポンスDTOに変換します。
func NewEmployeeListResponse(res *usecase.ListResult, now time.Time) EmployeeListResponse {
	data := make([]EmployeeResponse, 0, len(res.Employees))
	for i := range res.Employees {
		data = append(data, NewEmployeeResponse(&res.Employees[i], now))
	}

	units := res.UnitOptions
	if units == nil {
		units = []string{}
	}
	statuses := make([]string, 0, len(res.StatusOptions))
	for _, s := range res.StatusOptions {
		statuses = append(statuses, string(s))
	}
	categories := make([]string, 0, len(res.CategoryOptions))
	for _, c := range res.CategoryOptions {
		categories = append(categories, string(c))
	}

	return EmployeeListResponse{
		Data:    data,
		Meta:    res.Meta,
		Links:   res.Links,
		Filters: res.Filters,
		Options: ListOptions{
			UnitKerja:     units,
			Status:        statuses,
			StatusPegawai: categories,
		},
		Can: res.Can,
	}
}

// EmployeeShowResponse は GET /employees/:id のレスポンスDTOです。
type EmployeeShowResponse struct {
	Data EmployeeResponse     `json:"data"`
	Can  access.CapabilitySet `json:"can"`
}

// EmployeeWriteResponse は作成・更新成功時のレスポンスDTOです。
type EmployeeWriteResponse struct {
	Message string           `json:"message"`
	Data    EmployeeResponse `json:"data"`
}

// Option は選択肢1件（値と表示名）です。
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormOptionsResponse は GET /employees/options のレスポンスDTOです。
type FormOptionsResponse struct {
	Golongan      []string `json:"golongan"`
	StatusPegawai []string `json:"status_pegawai"`
	Status        []string `json:"status"`
	StatusKawin   []string `json:"status_kawin"`
	JenisKelamin  []Option `json:"jenis_kelamin"`
	Agama         []string `json:"agama"`
}

// NewFormOptionsResponse はフォームの選択肢をレスポンスDTOに変換します。
func NewFormOptionsResponse(o *usecase.FormOptions) FormOptionsResponse {
	out := FormOptionsResponse{
		Golongan:      make([]string, 0, len(o.Grades)),
		StatusPegawai: make([]string, 0, len(o.Categories)),
		Status:        make([]string, 0, len(o.Statuses)),
		StatusKawin:   make([]string, 0, len(o.MaritalStatuses)),
		JenisKelamin:  make([]Option, 0, len(o.Sexes)),
		Agama:         o.Religions,
	}
	for _, g := range o.Grades {
		out.Golongan = append(out.Golongan, string(g))
	}
	for _, c := range o.Categories {
		out.StatusPegawai = append(out.StatusPegawai, string(c))
	}
	for _, s := range o.Statuses {
		out.Status = append(out.Status, string(s))
	}
	for _, m := range o.MaritalStatuses {
		out.StatusKawin = append(out.StatusKawin, string(m))
	}
	for _, s := range o.Sexes {
		out.JenisKelamin = append(out.JenisKelamin, Option{Value: string(s), Label: s.Label()})
	}
	return out
}
