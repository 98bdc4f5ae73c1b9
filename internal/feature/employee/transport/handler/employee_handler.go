// Package handler はemployeeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"simpeg_backend/internal/feature/employee/domain"
	"simpeg_backend/internal/feature/employee/domain/entity"
	"simpeg_backend/internal/feature/employee/transport/http/dto"
	"simpeg_backend/internal/feature/employee/usecase"
	jwtmw "simpeg_backend/internal/platform/jwt"
	"simpeg_backend/internal/shared/access"
	"simpeg_backend/internal/shared/pagination"
)

// 成功時のメッセージ
const (
	MsgCreated = "Data pegawai berhasil ditambahkan."
	MsgUpdated = "Data pegawai berhasil diperbarui."
	MsgDeleted = "Data pegawai berhasil dihapus."
)

// EmployeeUsecase は職員管理のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EmployeeUsecase interface {
	List(ctx context.Context, actor access.Role, in usecase.ListInput) (*usecase.ListResult, error)
	Get(ctx context.Context, actor access.Role, id uint) (*usecase.GetResult, error)
	FormOptions(ctx context.Context, actor access.Role) (*usecase.FormOptions, error)
	Create(ctx context.Context, actor access.Role, in usecase.EmployeeInput) (*entity.Employee, error)
	Update(ctx context.Context, actor access.Role, id uint, in usecase.EmployeeInput) (*entity.Employee, error)
	Delete(ctx context.Context, actor access.Role, id uint) error
}

// EmployeeHandler は職員データのHTTPリクエストを処理します。
// 呼び出し元のロールは jwtmw.AuthRequired がコンテキストに設定したものを使用します。
type EmployeeHandler struct {
	uc  EmployeeUsecase
	now func() time.Time
}

// NewEmployeeHandler は指定されたusecaseでEmployeeHandlerの新しいインスタンスを生成します。
func NewEmployeeHandler(uc EmployeeUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, now: time.Now}
}

// List は絞り込み条件に一致する職員の1ページ分を返します。
//
// エンドポイント例:
// GET /employees?search=budi&status=Aktif&unit_kerja=Sekretariat&status_pegawai=PNS&page=2
func (h *EmployeeHandler) List(c *gin.Context) {
	in := usecase.ListInput{
		Filter: usecase.Filter{
			Search:   c.Query(usecase.ParamSearch),
			Status:   c.Query(usecase.ParamStatus),
			Unit:     c.Query(usecase.ParamUnit),
			Category: c.Query(usecase.ParamCategory),
		},
		Page: pagination.ParsePage(c.Query("page")),
		Path: c.Request.URL.Path,
	}

	res, err := h.uc.List(c.Request.Context(), jwtmw.RoleFrom(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEmployeeListResponse(res, h.now()))
}

// Options は作成・編集フォームの選択肢を返します。
func (h *EmployeeHandler) Options(c *gin.Context) {
	opts, err := h.uc.FormOptions(c.Request.Context(), jwtmw.RoleFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFormOptionsResponse(opts))
}

// Show はIDで指定された職員を返します。
func (h *EmployeeHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.uc.Get(c.Request.Context(), jwtmw.RoleFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EmployeeShowResponse{
		Data: dto.NewEmployeeResponse(res.Employee, h.now()),
		Can:  res.Can,
	})
}

// Create は職員を新規登録します。
// - 権限不足は403、検証エラーは422を返却
// - 成功時は201を返却
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("employee create: bad request body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	e, err := h.uc.Create(c.Request.Context(), jwtmw.RoleFrom(c), req.ToInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.EmployeeWriteResponse{
		Message: MsgCreated,
		Data:    dto.NewEmployeeResponse(e, h.now()),
	})
}

// Update は職員の全フィールドを置き換えます。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.EmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("employee update: bad request body", "error", err, "id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	e, err := h.uc.Update(c.Request.Context(), jwtmw.RoleFrom(c), id, req.ToInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EmployeeWriteResponse{
		Message: MsgUpdated,
		Data:    dto.NewEmployeeResponse(e, h.now()),
	})
}

// Delete は職員を削除します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), jwtmw.RoleFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: MsgDeleted})
}

// parseID はパスパラメータのIDを解析します。不正な場合は400を書き込み false を返します。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// writeError はユースケースのエラーをHTTPステータスに変換して書き込みます。
func (h *EmployeeHandler) writeError(c *gin.Context, err error) {
	var forbidden *access.ForbiddenError
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &forbidden):
		slog.Warn("employee access denied", "role", jwtmw.RoleFrom(c), "path", c.FullPath(), "method", c.Request.Method)
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: forbidden.Message})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Message: invalid.First(),
			Errors:  invalid.Fields,
		})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "employee not found"})
	default:
		slog.Error("employee request failed", "error", err, "path", c.FullPath(), "method", c.Request.Method)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
