package adapters

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"simpeg_backend/internal/feature/employee/domain"
	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/feature/employee/usecase"
	"simpeg_backend/internal/shared/access"
	"simpeg_backend/internal/shared/pagination"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
// 接続を1本に制限し、すべてのクエリが同じインメモリDBを参照するようにします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&EmployeeModel{}), "failed to migrate table")
	return db
}

var baseTime = time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// newEmployee は必須項目を埋めたテスト用の職員を生成します。
func newEmployee(nip, name string) *entity.Employee {
	return &entity.Employee{
		NIP:           nip,
		Name:          name,
		BirthPlace:    "Bengkulu",
		BirthDate:     time.Date(1988, time.August, 17, 0, 0, 0, 0, time.UTC),
		Sex:           entity.SexFemale,
		Religion:      "Islam",
		MaritalStatus: entity.MaritalSingle,
		Address:       "Jl. Pariwisata No. 9",
		Education:     "S1",
		Position:      "Analis Kepegawaian",
		Unit:          "Sekretariat",
		Grade:         entity.Grade("III/b"),
		Category:      entity.CategoryPNS,
		HireDate:      time.Date(2012, time.February, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:    decimal.RequireFromString("5250000.75"),
		Status:        entity.StatusActive,
		CreatedAt:     baseTime,
		UpdatedAt:     baseTime,
	}
}

// seed は職員を順番に登録します。
func seed(t *testing.T, repo *employeeGorm, employees ...*entity.Employee) {
	t.Helper()
	for _, e := range employees {
		require.NoError(t, repo.Create(context.Background(), e))
	}
}

func names(es []entity.Employee) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name)
	}
	return out
}

func TestNewEmployeeRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewEmployeeRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

// TestEmployeeGorm_CreateAndFind は登録した職員をIDで取得すると全フィールドが一致することを検証します。
func TestEmployeeGorm_CreateAndFind(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	ctx := context.Background()

	in := newEmployee("198808172012022001", "Siti Aminah")
	in.Phone = strPtr("0736-21234")
	in.Email = strPtr("siti@bkpsdm.bengkulu.go.id")
	in.Remarks = strPtr("Tugas belajar")

	require.NoError(t, repo.Create(ctx, in))
	require.NotZero(t, in.ID, "ID is not set")

	got, err := repo.FindByID(ctx, in.ID)
	require.NoError(t, err)

	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.NIP, got.NIP)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.BirthPlace, got.BirthPlace)
	assert.True(t, in.BirthDate.Equal(got.BirthDate), "birth date %v != %v", in.BirthDate, got.BirthDate)
	assert.Equal(t, in.Sex, got.Sex)
	assert.Equal(t, in.Religion, got.Religion)
	assert.Equal(t, in.MaritalStatus, got.MaritalStatus)
	assert.Equal(t, in.Address, got.Address)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Education, got.Education)
	assert.Equal(t, in.Position, got.Position)
	assert.Equal(t, in.Unit, got.Unit)
	assert.Equal(t, in.Grade, got.Grade)
	assert.Equal(t, in.Category, got.Category)
	assert.True(t, in.HireDate.Equal(got.HireDate))
	assert.True(t, in.BaseSalary.Equal(got.BaseSalary), "salary %s != %s", in.BaseSalary, got.BaseSalary)
	assert.Equal(t, in.Status, got.Status)
	assert.Equal(t, in.Remarks, got.Remarks)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, in.UpdatedAt.Equal(got.UpdatedAt))

	// 書き込みがなければ同じ結果が返る
	again, err := repo.FindByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

// TestEmployeeGorm_FindByID_NotFound は存在しないIDでErrEmployeeNotFoundが返されることを検証します。
func TestEmployeeGorm_FindByID_NotFound(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

// TestEmployeeGorm_Create_DuplicateNIP は同じnipでの2件目の登録が失敗し、1件のみ残ることを検証します。
func TestEmployeeGorm_Create_DuplicateNIP(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEmployee("199001012015031001", "Budi Santoso")))

	err := repo.Create(ctx, newEmployee("199001012015031001", "Andi Wijaya"))
	assert.ErrorIs(t, err, domain.ErrNIPAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&EmployeeModel{}).Where("nip = ?", "199001012015031001").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestEmployeeGorm_Create_ConcurrentSameNIP は同じnipでの同時登録がちょうど1件だけ成功することを検証します。
func TestEmployeeGorm_Create_ConcurrentSameNIP(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEmployeeRepository(db)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(context.Background(), newEmployee("200001012020121001", fmt.Sprintf("Pegawai %d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrNIPAlreadyExists):
				dupes++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, dupes)

	var count int64
	require.NoError(t, db.Model(&EmployeeModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestEmployeeGorm_List_SearchByName は検索語に一致する職員のみが返されることを検証します。
func TestEmployeeGorm_List_SearchByName(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	seed(t, repo,
		newEmployee("001", "Budi Santoso"),
		newEmployee("002", "Siti Aminah"),
	)

	rows, total, err := repo.List(context.Background(), usecase.ListQuery{Search: "Budi", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Budi Santoso"}, names(rows))
}

// TestEmployeeGorm_List_SearchColumns は検索が4列に対する大文字小文字を区別しない部分一致であることを検証します。
func TestEmployeeGorm_List_SearchColumns(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	a := newEmployee("196512311990031002", "Ahmad Fauzi")
	b := newEmployee("197702022005012003", "Dewi Lestari")
	b.Position = "Kepala Bidang"
	c := newEmployee("198303032009011004", "Rudi Hartono")
	c.Unit = "Bidang Informasi Kepegawaian"
	d := newEmployee("199104042019032005", "Nur_Aini 100%")
	seed(t, repo, a, b, c, d)

	tests := []struct {
		search string
		want   []string
	}{
		{"ahmad", []string{"Ahmad Fauzi"}},
		{"FAUZI", []string{"Ahmad Fauzi"}},
		{"2005012", []string{"Dewi Lestari"}},
		{"kepala bidang", []string{"Dewi Lestari"}},
		{"informasi", []string{"Rudi Hartono"}},
		{"100%", []string{"Nur_Aini 100%"}},
		{"r_a", []string{"Nur_Aini 100%"}},
		{"%", []string{"Nur_Aini 100%"}},
		{"tidak ada", nil},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			rows, total, err := repo.List(context.Background(), usecase.ListQuery{Search: tt.search, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			if tt.want == nil {
				assert.Empty(t, rows)
				return
			}
			assert.ElementsMatch(t, tt.want, names(rows))
		})
	}
}

// TestEmployeeGorm_List_FiltersCombineWithAnd は有効な条件がすべてANDで結合され、
// 返される件数が条件を満たす件数と一致することを検証します。
func TestEmployeeGorm_List_FiltersCombineWithAnd(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	units := []string{"Sekretariat", "Bidang Mutasi dan Promosi", "Bidang Pengembangan Kompetensi"}
	statuses := entity.Statuses()
	categories := entity.EmploymentCategories()

	var all []*entity.Employee
	for i := 0; i < 36; i++ {
		e := newEmployee(fmt.Sprintf("NIP%03d", i), fmt.Sprintf("Pegawai %02d", i))
		e.Unit = units[i%len(units)]
		e.Status = statuses[i%len(statuses)]
		e.Category = categories[(i/2)%len(categories)]
		if i%5 == 0 {
			e.Name = fmt.Sprintf("Budi %02d", i)
		}
		e.CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
		all = append(all, e)
	}
	seed(t, repo, all...)

	queries := []usecase.ListQuery{
		{},
		{Search: "budi"},
		{Status: entity.StatusActive},
		{Unit: "Sekretariat"},
		{Category: entity.CategoryPPPK},
		{Status: entity.StatusInactive, Unit: "Bidang Mutasi dan Promosi"},
		{Search: "budi", Status: entity.StatusActive, Category: entity.CategoryPNS},
		{Search: "pegawai", Unit: "Sekretariat", Category: entity.CategoryHonorer, Status: entity.StatusTransferred},
	}

	for i, q := range queries {
		t.Run(fmt.Sprintf("query %d", i), func(t *testing.T) {
			var want []string
			for _, e := range all {
				if q.Search != "" && !strings.Contains(strings.ToLower(e.Name), q.Search) &&
					!strings.Contains(strings.ToLower(e.NIP), q.Search) &&
					!strings.Contains(strings.ToLower(e.Position), q.Search) &&
					!strings.Contains(strings.ToLower(e.Unit), q.Search) {
					continue
				}
				if q.Status != "" && e.Status != q.Status {
					continue
				}
				if q.Unit != "" && e.Unit != q.Unit {
					continue
				}
				if q.Category != "" && e.Category != q.Category {
					continue
				}
				want = append(want, e.Name)
			}

			q.Limit = 100
			rows, total, err := repo.List(context.Background(), q)
			require.NoError(t, err)

			assert.Equal(t, int64(len(want)), total)
			assert.ElementsMatch(t, want, names(rows))
		})
	}
}

// TestEmployeeGorm_List_Ordering は作成日時の降順、同時刻ではIDの降順で並ぶことを検証します。
func TestEmployeeGorm_List_Ordering(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	old := newEmployee("A1", "Lama")
	old.CreatedAt = baseTime.Add(-24 * time.Hour)
	tie1 := newEmployee("A2", "Sama Satu")
	tie2 := newEmployee("A3", "Sama Dua")
	newest := newEmployee("A4", "Terbaru")
	newest.CreatedAt = baseTime.Add(time.Hour)
	seed(t, repo, old, tie1, tie2, newest)

	rows, _, err := repo.List(context.Background(), usecase.ListQuery{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"Terbaru", "Sama Dua", "Sama Satu", "Lama"}, names(rows))
}

// TestEmployeeGorm_List_PagesPartition は全ページの和集合が重複・欠落なく絞り込み結果全体と一致することを検証します。
func TestEmployeeGorm_List_PagesPartition(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	const n = 27
	for i := 0; i < n; i++ {
		// 同じ作成日時でもページングが決定的であること
		seed(t, repo, newEmployee(fmt.Sprintf("P%02d", i), fmt.Sprintf("Pegawai %02d", i)))
	}

	seen := map[uint]bool{}
	var pageSizes []int
	for page := 1; page <= 3; page++ {
		rows, total, err := repo.List(context.Background(), usecase.ListQuery{Limit: 10, Offset: (page - 1) * 10})
		require.NoError(t, err)
		assert.Equal(t, int64(n), total)
		pageSizes = append(pageSizes, len(rows))
		for _, r := range rows {
			assert.False(t, seen[r.ID], "employee %d appears on more than one page", r.ID)
			seen[r.ID] = true
		}
	}

	assert.Equal(t, []int{10, 10, 7}, pageSizes)
	assert.Len(t, seen, n)

	rows, total, err := repo.List(context.Background(), usecase.ListQuery{Limit: 10, Offset: 30})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(n), total)
}

// TestEmployeeGorm_List_HugePageIsPastTheEnd は桁あふれするほど大きなページ番号でも
// 1ページ目の行を返さず、空のページになることを検証します。
func TestEmployeeGorm_List_HugePageIsPastTheEnd(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	seed(t, repo, newEmployee("H1", "Satu"), newEmployee("H2", "Dua"), newEmployee("H3", "Tiga"))

	uc := usecase.NewEmployeeUsecase(repo, nil)
	res, err := uc.List(context.Background(), access.RoleUser, usecase.ListInput{
		Page: pagination.ParsePage("922337203685477582"),
	})

	require.NoError(t, err)
	assert.Empty(t, res.Employees)
	assert.Equal(t, int64(3), res.Meta.Total)
	assert.Equal(t, 1, res.Meta.LastPage)
	assert.Nil(t, res.Meta.From)
	assert.Nil(t, res.Meta.To)
}

// TestEmployeeGorm_DistinctUnits はunit_kerjaが重複なしで昇順に返されることを検証します。
func TestEmployeeGorm_DistinctUnits(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))

	units, err := repo.DistinctUnits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, units)

	a := newEmployee("U1", "A")
	a.Unit = "Sekretariat"
	b := newEmployee("U2", "B")
	b.Unit = "Bidang Pengadaan dan Penempatan"
	c := newEmployee("U3", "C")
	c.Unit = "Sekretariat"
	d := newEmployee("U4", "D")
	d.Unit = "Bidang Informasi Kepegawaian"
	seed(t, repo, a, b, c, d)

	units, err = repo.DistinctUnits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bidang Informasi Kepegawaian", "Bidang Pengadaan dan Penempatan", "Sekretariat"}, units)
}

// TestEmployeeGorm_ExistsByNIP は自身を除外した重複確認を検証します。
func TestEmployeeGorm_ExistsByNIP(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	ctx := context.Background()

	e := newEmployee("198001012000121001", "Hendra")
	seed(t, repo, e)

	exists, err := repo.ExistsByNIP(ctx, "198001012000121001", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNIP(ctx, "198001012000121001", e.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the record itself is excluded")

	exists, err = repo.ExistsByNIP(ctx, "000", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestEmployeeGorm_Update は更新で全カラムが置き換えられ、created_atが維持されることを検証します。
func TestEmployeeGorm_Update(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	ctx := context.Background()

	e := newEmployee("198501012010011001", "Budi Santoso")
	e.Phone = strPtr("08123")
	seed(t, repo, e)

	changed := newEmployee("198501012010011999", "Budi S.")
	changed.ID = e.ID
	changed.Phone = nil
	changed.Status = entity.StatusRetired
	changed.BaseSalary = decimal.RequireFromString("6000000")
	changed.CreatedAt = baseTime.Add(99 * time.Hour)
	changed.UpdatedAt = baseTime.Add(2 * time.Hour)

	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "198501012010011999", got.NIP)
	assert.Equal(t, "Budi S.", got.Name)
	assert.Nil(t, got.Phone, "null values are written")
	assert.Equal(t, entity.StatusRetired, got.Status)
	assert.Equal(t, "6000000.00", got.BaseSalary.StringFixed(2))
	assert.True(t, got.CreatedAt.Equal(baseTime), "created_at is preserved")
	assert.True(t, got.UpdatedAt.Equal(baseTime.Add(2*time.Hour)))
}

// TestEmployeeGorm_Update_Errors はNotFoundとnip重複を検証します。
func TestEmployeeGorm_Update_Errors(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	ctx := context.Background()

	first := newEmployee("111", "Pertama")
	second := newEmployee("222", "Kedua")
	seed(t, repo, first, second)

	t.Run("missing record", func(t *testing.T) {
		ghost := newEmployee("999", "Hantu")
		ghost.ID = 12345
		assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrEmployeeNotFound)
	})

	t.Run("nip taken by another record", func(t *testing.T) {
		clash := newEmployee("111", "Kedua")
		clash.ID = second.ID
		assert.ErrorIs(t, repo.Update(ctx, clash), domain.ErrNIPAlreadyExists)

		got, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "222", got.NIP, "original nip is unchanged")
	})
}

// TestEmployeeGorm_Delete は物理削除と、存在しないIDでのErrEmployeeNotFoundを検証します。
func TestEmployeeGorm_Delete(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	ctx := context.Background()

	e := newEmployee("333", "Dihapus")
	seed(t, repo, e)

	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.FindByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, e.ID), domain.ErrEmployeeNotFound)
}
