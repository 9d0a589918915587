package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"Connect_Hub/internal/model"
	"Connect_Hub/internal/pkg"
	"Connect_Hub/internal/repository/redis"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmailDomain = errors.New("only campus email addresses are allowed")
	ErrAccountNotFound    = errors.New("account not found, please sign up first")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCode        = errors.New("verification failed")
)

// UserStore 凭证、会话与登录 token 的持久化接口
type UserStore interface {
	CreateCredential(ctx context.Context, email string, cred *model.Credential) error
	GetCredential(ctx context.Context, email string) (*model.Credential, error)
	UpdateCredential(ctx context.Context, email string, cred *model.Credential) error
	SaveSession(ctx context.Context, user *model.User) error
	GetSession(ctx context.Context, userID string) (*model.User, error)
	DeleteSession(ctx context.Context, userID string) error
	AddUserToken(ctx context.Context, userID, token string) error
	DeleteUserToken(ctx context.Context, userID string) error
}

type UserService struct {
	repo        UserStore
	emailSvc    *EmailService
	emailRegex  *regexp.Regexp
	adminEmails []string
	requireCode bool // 配置了 SMTP 才要求注册验证码
}

func NewUserService(repo UserStore, emailSvc *EmailService, cfg *pkg.Config) *UserService {
	pattern := fmt.Sprintf(`^[a-zA-Z0-9._%%+-]+@%s$`, regexp.QuoteMeta(cfg.CampusDomain))
	return &UserService{
		repo:        repo,
		emailSvc:    emailSvc,
		emailRegex:  regexp.MustCompile(pattern),
		adminEmails: cfg.AdminEmails,
		requireCode: cfg.EmailVerificationEnabled(),
	}
}

func (s *UserService) validateEmail(email string) bool {
	return s.emailRegex.MatchString(email)
}

func (s *UserService) isAdmin(email string) bool {
	for _, e := range s.adminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// Signup 注册：校验域名、验证码，写入凭证，建立会话
func (s *UserService) Signup(ctx context.Context, email, name, password, code string) (*model.User, *pkg.Pair, error) {
	if !s.validateEmail(email) {
		return nil, nil, ErrInvalidEmailDomain
	}

	if s.requireCode {
		ok, err := s.emailSvc.VerifyCode(ctx, "register", email, code)
		if err != nil || !ok {
			return nil, nil, ErrInvalidCode
		}
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	err = s.repo.CreateCredential(ctx, email, &model.Credential{
		Name:     name,
		Password: string(hash),
	})
	if errors.Is(err, redis.ErrCredentialExists) {
		return nil, nil, ErrAccountExists
	}
	if err != nil {
		return nil, nil, err
	}

	return s.openSession(ctx, email, name)
}

// Login 登录：域名校验、凭证比对，管理员身份每次由白名单重新计算
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, *pkg.Pair, error) {
	if !s.validateEmail(email) {
		return nil, nil, ErrInvalidEmailDomain
	}

	cred, err := s.repo.GetCredential(ctx, email)
	if errors.Is(err, redis.ErrCredentialNotFound) {
		return nil, nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidPassword
	}

	name := cred.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	return s.openSession(ctx, email, name)
}

// openSession 构建会话用户，持久化并签发 token 对
func (s *UserService) openSession(ctx context.Context, email, name string) (*model.User, *pkg.Pair, error) {
	user := &model.User{
		ID:      "user_" + uuid.NewString(),
		Email:   email,
		Name:    name,
		IsAdmin: s.isAdmin(email),
	}

	if err := s.repo.SaveSession(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := pkg.GeneratePair(user.ID, user.IsAdmin)
	if err != nil {
		return nil, nil, err
	}
	if err := s.repo.AddUserToken(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout 幂等：会话和 token 都不在也算成功
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUserToken(ctx, userID); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, userID)
}

// GetUser 读取当前会话用户
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.GetSession(ctx, userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，成功后强制重新登录
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.GetSession(ctx, userID)
	if err != nil {
		return err
	}

	cred, err := s.repo.GetCredential(ctx, user.Email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cred.Password = string(hash)
	if err := s.repo.UpdateCredential(ctx, user.Email, cred); err != nil {
		return err
	}

	return s.Logout(ctx, userID)
}
