package app

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/security"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/domain"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/dto"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher 抽出散列函数便于测试替换（bcrypt 太慢，单测不跑真实现）。
type PasswordHasher func(plain string) (string, error)

type PasswordVerifier func(plain, hashed string) bool

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserService struct {
	repo   UserRepo
	hash   PasswordHasher
	verify PasswordVerifier
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{
		repo:   repo,
		hash:   security.HashPassword,
		verify: security.VerifyPassword,
	}
}

// Register 注册新用户。校验一次性收集全部字段问题再返回，
// 不让调用方挤牙膏式逐个修。
func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	var collector apperr.Collector
	if !usernamePattern.MatchString(username) {
		collector.AddDetail(apperr.FieldError{
			Field:        "username",
			Message:      apperr.MsgUsernameInvalid,
			InvalidValue: username,
			Constraint:   "pattern",
		})
	}
	if len(req.Password) < 8 {
		collector.AddDetail(apperr.FieldError{
			Field:      "password",
			Message:    apperr.MsgPasswordRequirements,
			Constraint: "min_length",
		})
	}
	if collector.HasErrors() {
		return nil, collector.Err()
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err != nil {
		if !db.IsNotFound(err) {
			return nil, err
		}
	} else if existing != nil {
		return nil, apperr.NewDuplicateResource("User", "email", email)
	}
	if existing, err := s.repo.GetByUsername(ctx, username); err != nil {
		if !db.IsNotFound(err) {
			return nil, err
		}
	} else if existing != nil {
		return nil, apperr.NewDuplicateResource("User", "username", username)
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, apperr.NewDatabase("user.hash_password", err)
	}

	user := &domain.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
		FullName:       strings.TrimSpace(req.FullName),
		IsActive:       true,
	}
	// 并发注册可能绕过上面的查重，唯一索引冲突留给分发层归一
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate 校验邮箱口令。用户不存在和口令错误返回同一个错误码，
// 不给外部探测账号存在性的机会。
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginReq) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.NewAuthorization("Account is deactivated")
	}
	if !s.verify(req.Password, user.HashedPassword) {
		return nil, invalidCredentials()
	}
	return user, nil
}

func uintID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func invalidCredentials() *apperr.Error {
	return apperr.NewAuthentication("").
		WithField("password").
		WithSuggestions(apperr.SuggestCheckPassword)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NewResourceNotFound("User", uintID(id))
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req dto.UpdateReq) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if existing, err := s.repo.GetByEmail(ctx, email); err != nil {
				if !db.IsNotFound(err) {
					return nil, err
				}
			} else if existing != nil {
				return nil, apperr.NewDuplicateResource("User", "email", email)
			}
			user.Email = email
		}
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if !usernamePattern.MatchString(username) {
			return nil, apperr.NewValidation("username", apperr.MsgUsernameInvalid)
		}
		if username != user.Username {
			if existing, err := s.repo.GetByUsername(ctx, username); err != nil {
				if !db.IsNotFound(err) {
					return nil, err
				}
			} else if existing != nil {
				return nil, apperr.NewDuplicateResource("User", "username", username)
			}
			user.Username = username
		}
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate 软删除。删除后邮箱和用户名仍占用唯一索引。
func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
