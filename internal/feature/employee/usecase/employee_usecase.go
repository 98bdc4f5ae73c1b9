package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"simpeg_backend/internal/feature/employee/domain"
	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/shared/access"
	"simpeg_backend/internal/shared/pagination"
)

// PerPage は一覧の1ページあたりの件数です。
const PerPage = pagination.DefaultPerPage

// ListInput は一覧取得の入力です。
// Path はページリンクのURLに使われるパスで、空の場合はクエリのみの相対URLになります。
type ListInput struct {
	Filter Filter
	Page   int
	Path   string
}

// ListResult は一覧1ページ分の結果と、絞り込みUIに使うファセット値です。
type ListResult struct {
	Employees []entity.Employee
	Meta      pagination.Meta
	Links     []pagination.Link

	// Filters は送信された空でない絞り込み条件です。
	Filters map[string]string

	UnitOptions     []string
	StatusOptions   []entity.Status
	CategoryOptions []entity.EmploymentCategory

	Can access.CapabilitySet
}

// GetResult は1件取得の結果です。
type GetResult struct {
	Employee *entity.Employee
	Can      access.CapabilitySet
}

// FormOptions は作成・編集フォームの選択肢です。
type FormOptions struct {
	Grades          []entity.Grade
	Categories      []entity.EmploymentCategory
	Statuses        []entity.Status
	MaritalStatuses []entity.MaritalStatus
	Sexes           []entity.Sex
	Religions       []string
}

// employeeUsecase は職員管理のビジネスロジックを実装します。
// すべての操作は呼び出し元のロールを明示的な引数として受け取り、
// 権限が不足している場合はリポジトリに一切アクセスせず access.ForbiddenError を返します。
type employeeUsecase struct {
	repo      EmployeeRepository
	clock     Clock
	validator *validator.Validate
}

// NewEmployeeUsecase はemployeeUsecaseの新しいインスタンスを生成します。
// clock が nil の場合はシステム時刻を使用します。
func NewEmployeeUsecase(repo EmployeeRepository, clock Clock) *employeeUsecase {
	if clock == nil {
		clock = realClock{}
	}
	return &employeeUsecase{
		repo:      repo,
		clock:     clock,
		validator: newValidator(),
	}
}

// List は絞り込み条件に一致する職員を作成日時の新しい順に1ページ分返します。
func (u *employeeUsecase) List(ctx context.Context, actor access.Role, in ListInput) (*ListResult, error) {
	if !access.CanView(actor) {
		return nil, access.Deny(domain.MsgViewForbidden)
	}

	params := pagination.NewParams(in.Page, PerPage)
	q := in.Filter.toQuery()
	q.Limit = params.PerPage
	q.Offset = params.Offset

	rows, total, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	units, err := u.repo.DistinctUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unit options: %w", err)
	}

	meta := pagination.NewMeta(params, total, len(rows))
	return &ListResult{
		Employees:       rows,
		Meta:            meta,
		Links:           pagination.Links(meta, in.Path, in.Filter.Values()),
		Filters:         in.Filter.Map(),
		UnitOptions:     units,
		StatusOptions:   entity.Statuses(),
		CategoryOptions: entity.EmploymentCategories(),
		Can:             access.Capabilities(actor),
	}, nil
}

// Get はIDで職員を1件取得します。
func (u *employeeUsecase) Get(ctx context.Context, actor access.Role, id uint) (*GetResult, error) {
	if !access.CanView(actor) {
		return nil, access.Deny(domain.MsgViewForbidden)
	}

	e, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetResult{Employee: e, Can: access.Capabilities(actor)}, nil
}

// FormOptions は作成・編集フォームの選択肢を返します。
func (u *employeeUsecase) FormOptions(_ context.Context, actor access.Role) (*FormOptions, error) {
	if !access.CanEdit(actor) {
		return nil, access.Deny(domain.MsgCreateForbidden)
	}
	return &FormOptions{
		Grades:          entity.Grades(),
		Categories:      entity.EmploymentCategories(),
		Statuses:        entity.Statuses(),
		MaritalStatuses: entity.MaritalStatuses(),
		Sexes:           entity.Sexes(),
		Religions:       entity.Religions(),
	}, nil
}

// Create は入力を検証して職員を新規登録します。
// status が未指定の場合は Aktif で登録されます。
func (u *employeeUsecase) Create(ctx context.Context, actor access.Role, in EmployeeInput) (*entity.Employee, error) {
	if !access.CanEdit(actor) {
		return nil, access.Deny(domain.MsgCreateForbidden)
	}

	e, err := u.validate(ctx, in, 0, false)
	if err != nil {
		return nil, err
	}

	now := u.now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := u.repo.Create(ctx, e); err != nil {
		return nil, translateWriteError(err)
	}

	slog.Info("employee created", "id", e.ID, "nip", e.NIP, "actor_role", actor)
	return e, nil
}

// Update は職員の全フィールドを検証済みの入力で置き換えます（部分更新ではありません）。
// nip の重複確認では更新対象自身を除外します。
func (u *employeeUsecase) Update(ctx context.Context, actor access.Role, id uint, in EmployeeInput) (*entity.Employee, error) {
	if !access.CanEdit(actor) {
		return nil, access.Deny(domain.MsgEditForbidden)
	}

	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e, err := u.validate(ctx, in, current.ID, true)
	if err != nil {
		return nil, err
	}

	e.ID = current.ID
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = u.now()

	if err := u.repo.Update(ctx, e); err != nil {
		return nil, translateWriteError(err)
	}

	slog.Info("employee updated", "id", e.ID, "nip", e.NIP, "actor_role", actor)
	return e, nil
}

// Delete は職員を物理削除します。
func (u *employeeUsecase) Delete(ctx context.Context, actor access.Role, id uint) error {
	if !access.CanManage(actor) {
		return access.Deny(domain.MsgDeleteForbidden)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deleted", "id", id, "actor_role", actor)
	return nil
}

// now はDBの精度（マイクロ秒）に揃えたUTCの現在時刻を返します。
func (u *employeeUsecase) now() time.Time {
	return u.clock.Now().UTC().Truncate(time.Microsecond)
}

// translateWriteError は同時書き込みによる nip の一意制約違反を、
// 事前チェックと同じ形の検証エラーに変換します。
func translateWriteError(err error) error {
	if errors.Is(err, domain.ErrNIPAlreadyExists) {
		ve := domain.NewValidationError()
		ve.Add("nip", domain.MsgNIPTaken)
		return ve
	}
	return err
}
