// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simpeg_backend/internal/feature/auth/domain/entity"
	"simpeg_backend/internal/feature/auth/transport/http/dto"
	"simpeg_backend/internal/feature/auth/usecase"
	jwtmw "simpeg_backend/internal/platform/jwt"
	"simpeg_backend/internal/shared/access"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
	Login(ctx context.Context, email, password, clientIP string) (*usecase.LoginResult, error)
	// Me は指定されたIDのユーザーを返します。
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 試行回数の上限到達時はRetry-After付きで429を返却
// - 認証失敗時は401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		var throttled *usecase.ThrottledError
		switch {
		case errors.As(err, &throttled):
			slog.Warn("login throttled", "email", req.Email, "remote_addr", c.ClientIP())
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(throttled)))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "too many login attempts"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid email or password"})
		default:
			slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: res.Token, User: dto.NewUserResponse(res.User)})
}

// Me は認証済みユーザーの情報と操作可否を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// トークン発行後にユーザーが削除された場合
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}
		slog.Error("load current user failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		UserResponse: dto.NewUserResponse(user),
		Can:          access.Capabilities(user.Role),
	})
}

// CurrentUser は jwtmw.AuthRequired の後に置くミドルウェアで、トークンのユーザーを
// リクエストごとに読み込み、コンテキストのロールを保存済みのロールで置き換えます。
// トークン発行後のロール変更や削除は、トークンの有効期限を待たずに反映されます。
func (h *AuthHandler) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := jwtmw.UserIDFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}

		user, err := h.auth.Me(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
				return
			}
			slog.Error("load current user failed", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
			return
		}
		if !user.Role.Valid() {
			slog.Warn("stored role is invalid", "user_id", userID, "role", user.Role)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}

		c.Set(jwtmw.ContextRole, user.Role)
		c.Next()
	}
}

// retryAfterSeconds は Retry-After ヘッダー用に秒へ切り上げます。最小は1秒です。
func retryAfterSeconds(e *usecase.ThrottledError) int {
	s := int(math.Ceil(e.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
