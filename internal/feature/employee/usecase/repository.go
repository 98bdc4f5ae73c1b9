// Package usecase はemployeeフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"simpeg_backend/internal/feature/employee/domain/entity"
)

// ListQuery はリポジトリに渡す正規化済みの検索条件です。
// ゼロ値のフィールドはその軸で絞り込みを行わないことを意味します。
type ListQuery struct {
	Search   string
	Status   entity.Status
	Unit     string
	Category entity.EmploymentCategory

	Limit  int
	Offset int
}

// EmployeeRepository は職員エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EmployeeRepository interface {
	// List は条件に一致する職員を created_at DESC, id DESC の順で1ページ分返し、
	// 一致した総件数を併せて返します。
	List(ctx context.Context, q ListQuery) ([]entity.Employee, int64, error)

	// DistinctUnits は保存されている unit_kerja の重複なし一覧を昇順で返します。
	DistinctUnits(ctx context.Context) ([]string, error)

	// FindByID はIDで職員を取得します。存在しない場合は domain.ErrEmployeeNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Employee, error)

	// ExistsByNIP は excludeID 以外の職員が nip を使用しているかを返します。
	// excludeID が0の場合は全件を対象にします。
	ExistsByNIP(ctx context.Context, nip string, excludeID uint) (bool, error)

	// Create は職員を永続化し、e.ID を設定します。
	// nip の一意制約違反は domain.ErrNIPAlreadyExists として返します。
	Create(ctx context.Context, e *entity.Employee) error

	// Update は e.ID の職員の全フィールドを置き換えます。
	Update(ctx context.Context, e *entity.Employee) error

	// Delete は職員を物理削除します。存在しない場合は domain.ErrEmployeeNotFound を返します。
	Delete(ctx context.Context, id uint) error
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
