package adapters

import (
	"time"

	"github.com/shopspring/decimal"

	"simpeg_backend/internal/feature/employee/domain/entity"
)

// EmployeeModel is the GORM model for the employees table.
// Column names and indexes follow the table layout the data was created with.
type EmployeeModel struct {
	ID                 uint            `gorm:"primaryKey"`
	NIP                string          `gorm:"column:nip;size:20;not null;uniqueIndex:employees_nip_unique"`
	Nama               string          `gorm:"column:nama;size:255;not null;index:employees_nama_index"`
	TempatLahir        string          `gorm:"column:tempat_lahir;size:255;not null"`
	TanggalLahir       time.Time       `gorm:"column:tanggal_lahir;type:date;not null"`
	JenisKelamin       string          `gorm:"column:jenis_kelamin;size:1;not null"`
	Agama              string          `gorm:"column:agama;size:255;not null"`
	StatusKawin        string          `gorm:"column:status_kawin;size:20;not null"`
	Alamat             string          `gorm:"column:alamat;type:text;not null"`
	Telepon            *string         `gorm:"column:telepon;size:20"`
	Email              *string         `gorm:"column:email;size:255"`
	PendidikanTerakhir string          `gorm:"column:pendidikan_terakhir;size:255;not null"`
	Jabatan            string          `gorm:"column:jabatan;size:255;not null;index:employees_jabatan_index"`
	UnitKerja          string          `gorm:"column:unit_kerja;size:255;not null;index:employees_status_unit_kerja_index,priority:2"`
	Golongan           string          `gorm:"column:golongan;size:10;not null;index:employees_status_pegawai_golongan_index,priority:2"`
	StatusPegawai      string          `gorm:"column:status_pegawai;size:10;not null;index:employees_status_pegawai_golongan_index,priority:1"`
	TanggalMasuk       time.Time       `gorm:"column:tanggal_masuk;type:date;not null"`
	GajiPokok          decimal.Decimal `gorm:"column:gaji_pokok;type:numeric(15,2);not null"`
	Status             string          `gorm:"column:status;size:20;not null;default:'Aktif';index:employees_status_unit_kerja_index,priority:1"`
	Keterangan         *string         `gorm:"column:keterangan;type:text"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName specifies the table name for EmployeeModel.
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToEntity converts the model to a domain entity.
func (m *EmployeeModel) ToEntity() entity.Employee {
	return entity.Employee{
		ID:            m.ID,
		NIP:           m.NIP,
		Name:          m.Nama,
		BirthPlace:    m.TempatLahir,
		BirthDate:     entity.Date(m.TanggalLahir),
		Sex:           entity.Sex(m.JenisKelamin),
		Religion:      m.Agama,
		MaritalStatus: entity.MaritalStatus(m.StatusKawin),
		Address:       m.Alamat,
		Phone:         m.Telepon,
		Email:         m.Email,
		Education:     m.PendidikanTerakhir,
		Position:      m.Jabatan,
		Unit:          m.UnitKerja,
		Grade:         entity.Grade(m.Golongan),
		Category:      entity.EmploymentCategory(m.StatusPegawai),
		HireDate:      entity.Date(m.TanggalMasuk),
		BaseSalary:    m.GajiPokok.Round(entity.SalaryScale),
		Status:        entity.Status(m.Status),
		Remarks:       m.Keterangan,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

// employeeModelFromEntity converts a domain entity to the model.
func employeeModelFromEntity(e *entity.Employee) EmployeeModel {
	return EmployeeModel{
		ID:                 e.ID,
		NIP:                e.NIP,
		Nama:               e.Name,
		TempatLahir:        e.BirthPlace,
		TanggalLahir:       entity.Date(e.BirthDate),
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
		TanggalMasuk:       entity.Date(e.HireDate),
		GajiPokok:          e.BaseSalary.Round(entity.SalaryScale),
		Status:             string(e.Status),
		Keterangan:         e.Remarks,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
