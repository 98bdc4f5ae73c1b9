// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"simpeg_backend/internal/feature/auth/domain/entity"
	"simpeg_backend/internal/shared/access"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// dummyHash はユーザーが存在しない場合にもbcrypt比較を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email, name string, role access.Role) (string, error)
}

// LoginThrottle はログイン失敗の回数をキーごとに記録します。
type LoginThrottle interface {
	Allow(key string) (bool, time.Duration)
	Hit(key string)
	Reset(key string)
}

// LoginResult はログイン成功時の結果です。
type LoginResult struct {
	Token string
	User  *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	throttle     LoginThrottle
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// throttle が nil の場合、ログイン試行回数は制限されません。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, throttle LoginThrottle) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		throttle:     throttle,
	}
}

// NormalizeEmail は比較・保存用にメールアドレスを正規化します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// CreateUser はハッシュ化されたパスワードで新規ユーザーを登録します。
// ユーザー登録のHTTPエンドポイントはなく、初期データ投入（cmd/seed）から使用されます。
func (u *authUsecase) CreateUser(ctx context.Context, name, email, password string, role access.Role) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidUser)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUser, access.ErrUnknownRole)
	}
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Role: role, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// メールアドレスとパスワードを検証し、署名済みJWTトークンを生成します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 失敗はメールアドレスと接続元アドレスの組ごとに記録され、上限を超えると ThrottledError を返します。
func (u *authUsecase) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = NormalizeEmail(email)
	key := email + "|" + clientIP

	if u.throttle != nil {
		if ok, retryAfter := u.throttle.Allow(key); !ok {
			return nil, &ThrottledError{RetryAfter: retryAfter}
		}
	}

	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出、パスワード不一致、ロール不正はすべて同じエラーにする
	if user == nil || compareErr != nil || !user.Role.Valid() {
		if u.throttle != nil {
			u.throttle.Hit(key)
		}
		return nil, ErrInvalidCredentials
	}

	// 注入されたジェネレーターを使用してJWTトークンを生成
	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if u.throttle != nil {
		u.throttle.Reset(key)
	}
	slog.Info("user login successful", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, User: user}, nil
}

// Me は認証済みユーザーの情報を返します。
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
