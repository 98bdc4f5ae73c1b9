package usecase

import (
	"net/url"
	"strings"

	"simpeg_backend/internal/feature/employee/domain/entity"
)

// Query parameter names shared by the list endpoint and its page links.
const (
	ParamSearch   = "search"
	ParamStatus   = "status"
	ParamUnit     = "unit_kerja"
	ParamCategory = "status_pegawai"
)

// Filter は一覧画面から送られた未加工の絞り込み条件です。
type Filter struct {
	Search   string
	Status   string
	Unit     string
	Category string
}

func (f Filter) trimmed() Filter {
	return Filter{
		Search:   strings.TrimSpace(f.Search),
		Status:   strings.TrimSpace(f.Status),
		Unit:     strings.TrimSpace(f.Unit),
		Category: strings.TrimSpace(f.Category),
	}
}

// Values は空でない条件をクエリパラメータとして返します。
// ページリンクに引き継ぐため、列挙値として不正な値もそのまま保持します。
func (f Filter) Values() url.Values {
	v := url.Values{}
	for k, s := range f.Map() {
		v.Set(k, s)
	}
	return v
}

// Map は空でない条件をパラメータ名をキーにして返します。
func (f Filter) Map() map[string]string {
	m := map[string]string{}
	t := f.trimmed()
	if t.Search != "" {
		m[ParamSearch] = t.Search
	}
	if t.Status != "" {
		m[ParamStatus] = t.Status
	}
	if t.Unit != "" {
		m[ParamUnit] = t.Unit
	}
	if t.Category != "" {
		m[ParamCategory] = t.Category
	}
	return m
}

// toQuery は条件を正規化します。status と status_pegawai は
// 列挙値に含まれない場合、エラーにせず絞り込みなしとして扱います。
func (f Filter) toQuery() ListQuery {
	t := f.trimmed()
	q := ListQuery{
		Search: t.Search,
		Unit:   t.Unit,
	}
	if s, ok := entity.ParseStatus(t.Status); ok {
		q.Status = s
	}
	if c, ok := entity.ParseEmploymentCategory(t.Category); ok {
		q.Category = c
	}
	return q
}
