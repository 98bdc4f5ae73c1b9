package entity

// Sex is jenis_kelamin.
type Sex string

const (
	SexMale   Sex = "L"
	SexFemale Sex = "P"
)

// Sexes returns the valid values in display order.
func Sexes() []Sex { return []Sex{SexMale, SexFemale} }

// ParseSex converts an external value into a Sex.
func ParseSex(s string) (Sex, bool) {
	v := Sex(s)
	return v, v.Valid()
}

func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

// Label returns the human readable name.
func (s Sex) Label() string {
	switch s {
	case SexMale:
		return "Laki-laki"
	case SexFemale:
		return "Perempuan"
	}
	return string(s)
}

// MaritalStatus is status_kawin.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "Belum Kawin"
	MaritalMarried  MaritalStatus = "Kawin"
	MaritalDivorced MaritalStatus = "Cerai Hidup"
	MaritalWidowed  MaritalStatus = "Cerai Mati"
)

func MaritalStatuses() []MaritalStatus {
	return []MaritalStatus{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed}
}

func ParseMaritalStatus(s string) (MaritalStatus, bool) {
	v := MaritalStatus(s)
	return v, v.Valid()
}

func (m MaritalStatus) Valid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

// Grade is golongan, the civil service pay grade. Values are ordered from
// lowest (I/a) to highest (IV/e).
type Grade string

var grades = []Grade{
	"I/a", "I/b", "I/c", "I/d",
	"II/a", "II/b", "II/c", "II/d",
	"III/a", "III/b", "III/c", "III/d",
	"IV/a", "IV/b", "IV/c", "IV/d", "IV/e",
}

// Grades returns all 17 grades in ascending order.
func Grades() []Grade {
	return append([]Grade(nil), grades...)
}

func ParseGrade(s string) (Grade, bool) {
	v := Grade(s)
	return v, v.Valid()
}

func (g Grade) Valid() bool {
	return g.Rank() >= 0
}

// Rank returns the zero-based position of g in the grade order, or -1.
func (g Grade) Rank() int {
	for i, v := range grades {
		if v == g {
			return i
		}
	}
	return -1
}

// EmploymentCategory is status_pegawai.
type EmploymentCategory string

const (
	CategoryPNS     EmploymentCategory = "PNS"
	CategoryCPNS    EmploymentCategory = "CPNS"
	CategoryPPPK    EmploymentCategory = "PPPK"
	CategoryHonorer EmploymentCategory = "Honorer"
)

func EmploymentCategories() []EmploymentCategory {
	return []EmploymentCategory{CategoryPNS, CategoryCPNS, CategoryPPPK, CategoryHonorer}
}

func ParseEmploymentCategory(s string) (EmploymentCategory, bool) {
	v := EmploymentCategory(s)
	return v, v.Valid()
}

func (c EmploymentCategory) Valid() bool {
	switch c {
	case CategoryPNS, CategoryCPNS, CategoryPPPK, CategoryHonorer:
		return true
	}
	return false
}

// Status is the employee's activity state.
type Status string

const (
	StatusActive      Status = "Aktif"
	StatusInactive    Status = "Tidak Aktif"
	StatusRetired     Status = "Pensiun"
	StatusTransferred Status = "Mutasi"
)

// DefaultStatus is assigned on creation when no status is given.
const DefaultStatus = StatusActive

func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusRetired, StatusTransferred}
}

func ParseStatus(s string) (Status, bool) {
	v := Status(s)
	return v, v.Valid()
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusRetired, StatusTransferred:
		return true
	}
	return false
}

// Religions returns the religion options offered by entry forms. Religion is
// stored as free text, so this list is advisory.
func Religions() []string {
	return []string{"Islam", "Kristen", "Katolik", "Hindu", "Buddha", "Konghucu"}
}
