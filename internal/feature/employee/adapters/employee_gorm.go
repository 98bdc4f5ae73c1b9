// Package adapters はemployeeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"simpeg_backend/internal/feature/employee/domain"
	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/feature/employee/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// likeEscaper escapes LIKE wildcards so a search term matches literally.
// The escape character must match the ESCAPE clause in searchClause.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

const searchClause = "(LOWER(nama) LIKE ? ESCAPE '!' OR LOWER(nip) LIKE ? ESCAPE '!'" +
	" OR LOWER(jabatan) LIKE ? ESCAPE '!' OR LOWER(unit_kerja) LIKE ? ESCAPE '!')"

// employeeGorm はEmployeeRepositoryインターフェースのGORM実装です。
type employeeGorm struct {
	db *gorm.DB
}

// employeeGormがEmployeeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EmployeeRepository = (*employeeGorm)(nil)

// NewEmployeeRepository は指定されたgorm.DB接続でemployeeGormの新しいインスタンスを生成します。
func NewEmployeeRepository(db *gorm.DB) *employeeGorm {
	return &employeeGorm{db: db}
}

// filtered は絞り込み条件を適用したクエリを返します。
// 有効な条件はすべてANDで結合され、検索語は4列に対するORになります。
func (r *employeeGorm) filtered(ctx context.Context, q usecase.ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&EmployeeModel{})
	if q.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(searchClause, like, like, like, like)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", string(q.Status))
	}
	if q.Unit != "" {
		tx = tx.Where("unit_kerja = ?", q.Unit)
	}
	if q.Category != "" {
		tx = tx.Where("status_pegawai = ?", string(q.Category))
	}
	return tx
}

// List は条件に一致する職員を created_at DESC, id DESC の順で返します。
func (r *employeeGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Employee, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []EmployeeModel
	tx := r.filtered(ctx, q).Order("created_at DESC").Order("id DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]entity.Employee, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, total, nil
}

// DistinctUnits は unit_kerja の重複なし一覧を昇順で返します。
func (r *employeeGorm) DistinctUnits(ctx context.Context) ([]string, error) {
	var units []string
	if err := r.db.WithContext(ctx).Model(&EmployeeModel{}).Distinct().Pluck("unit_kerja", &units).Error; err != nil {
		return nil, err
	}
	// 照合順序に依存しないようGo側でソートする
	sort.Strings(units)
	return units, nil
}

// FindByID はIDで職員を取得します。
// 存在しない場合、domain.ErrEmployeeNotFoundを返します。
func (r *employeeGorm) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	var m EmployeeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// ExistsByNIP は excludeID 以外の職員が nip を使用しているかを返します。
func (r *employeeGorm) ExistsByNIP(ctx context.Context, nip string, excludeID uint) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&EmployeeModel{}).Where("nip = ?", nip)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create は職員をデータベースに追加し、採番されたIDを e.ID に設定します。
// nip が重複している場合、domain.ErrNIPAlreadyExistsを返します。
func (r *employeeGorm) Create(ctx context.Context, e *entity.Employee) error {
	m := employeeModelFromEntity(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNIPAlreadyExists
		}
		return err
	}
	e.ID = m.ID
	return nil
}

// Update は e.ID の職員の全カラムを置き換えます。created_at は変更しません。
func (r *employeeGorm) Update(ctx context.Context, e *entity.Employee) error {
	m := employeeModelFromEntity(e)
	res := r.db.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("id = ?", e.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&m)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrNIPAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete は職員を物理削除します。
// 存在しない場合、domain.ErrEmployeeNotFoundを返します。
func (r *employeeGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&EmployeeModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
// gorm translates driver errors when TranslateError is enabled; the pgconn
// check covers connections opened without it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
