package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cookwhat/internal/feature/auth/domain/entity"
)

const (
	// MinPasswordLength はパスワードの最低文字数を定義します。
	MinPasswordLength = 6

	// dummyHash はユーザーが存在しない場合にも bcrypt 比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// ユーザー名またはメールアドレスが重複する場合、ErrUserAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername はユーザー名に一致するユーザーを取得します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID はIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update はプロフィール項目を保存します。重複時は ErrUserAlreadyExists を返します。
	Update(ctx context.Context, user *entity.User) error
}

// TokenIssuer はセッションに紐づくアクセストークンを発行します。
type TokenIssuer interface {
	GenerateToken(userID uint, sessionID string, expiresAt time.Time) (string, error)
}

// SearchCacheCleaner はログアウト時にセッション単位の検索キャッシュを破棄します。
type SearchCacheCleaner interface {
	Delete(ctx context.Context, sessionID string) error
}

// Config はセッションの寿命と同時ログイン数を制御します。
type Config struct {
	SessionTTL         time.Duration
	MaxSessionsPerUser int // 0 は無制限
}

// SignupInput は新規登録の入力値です。
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	AvatarImg string
	Bio       string
}

// SessionMeta はログイン元クライアントの情報です。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// LoginResult はログイン成功時に返される値です。
type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// ProfileUpdate は nil でない項目だけを更新します。
type ProfileUpdate struct {
	Username  *string
	Email     *string
	AvatarImg *string
	Bio       *string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenIssuer
	searches SearchCacheCleaner
	cfg      Config
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// searches は nil でも構いません。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenIssuer, searches SearchCacheCleaner, cfg Config) *authUsecase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		searches: searches,
		cfg:      cfg,
	}
}

// validatePassword はパスワードが最低文字数を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, MinPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、そのままログインさせます。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput, meta SessionMeta) (*LoginResult, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		AvatarImg: in.AvatarImg,
		Bio:       in.Bio,
	}
	if user.AvatarImg == "" {
		user.AvatarImg = entity.DefaultAvatarURL
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.startSession(ctx, user, meta)
}

// Authenticate はユーザー名とパスワードを検証します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出とパスワード不一致は同じエラーにする
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login はユーザーを認証し、新しいセッションとアクセストークンを返します。
func (u *authUsecase) Login(ctx context.Context, username, password string, meta SessionMeta) (*LoginResult, error) {
	user, err := u.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return u.startSession(ctx, user, meta)
}

// startSession はセッションを作成してトークンを発行します。
// 上限を超える場合は最も古いセッションを削除します。
func (u *authUsecase) startSession(ctx context.Context, user *entity.User, meta SessionMeta) (*LoginResult, error) {
	if u.cfg.MaxSessionsPerUser > 0 {
		count, err := u.sessions.CountActiveByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("count sessions: %w", err)
		}
		for ; count >= int64(u.cfg.MaxSessionsPerUser); count-- {
			if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("evict oldest session: %w", err)
			}
		}
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.SessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// newSessionID は32バイトの乱数を16進文字列で返します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Logout はセッションを失効させ、そのセッションの検索キャッシュを削除します。
// 既に存在しないセッションに対しては何もしません。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}
	if u.searches != nil {
		if err := u.searches.Delete(ctx, sessionID); err != nil {
			// キャッシュはTTLで消えるため失敗してもログアウトは成功扱い
			zap.S().Warnw("failed to drop search cache on logout", "error", err)
		}
	}
	return nil
}

// ValidateSession はセッションが有効であればそのユーザーIDを返します。
func (u *authUsecase) ValidateSession(ctx context.Context, sessionID string) (uint, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !session.IsValid() {
		return 0, ErrSessionInvalid
	}
	return session.UserID, nil
}

// Profile はユーザー情報を返します。
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile はログイン中のユーザー自身のプロフィールを更新します。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.AvatarImg != nil {
		user.AvatarImg = *upd.AvatarImg
		if user.AvatarImg == "" {
			user.AvatarImg = entity.DefaultAvatarURL
		}
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
