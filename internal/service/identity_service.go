package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/identity"
	"Newsroom/internal/pkg/util"
	"Newsroom/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"unicode"
)

const maxUsernameLen = 30

type IdentityService interface {
	Resolve(ctx context.Context, claims *identity.Claims) (*model.User, error)
	Sync(ctx context.Context, tokenClaims *identity.Claims) (*model.User, error)
	Refresh(ctx context.Context, claims *identity.Claims) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
}

type identityServiceImpl struct {
	userRepo repository.UserRepo
	provider identity.Provider
}

// NewIdentityService provider 可以为 nil，此时只使用 token 中的声明
func NewIdentityService(userRepo repository.UserRepo, provider identity.Provider) IdentityService {
	return &identityServiceImpl{
		userRepo: userRepo,
		provider: provider,
	}
}

func (s *identityServiceImpl) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	user, err := s.userRepo.GetUserByExternalID(ctx, externalID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return user, nil
}

// Resolve 外部身份映射为内部用户，首次出现时创建
// 并发的首次创建由 external_id 唯一约束收敛，落败方回读
func (s *identityServiceImpl) Resolve(ctx context.Context, claims *identity.Claims) (*model.User, error) {
	if claims == nil || strings.TrimSpace(claims.ExternalID) == "" {
		return nil, ErrParamInvalid
	}
	externalID := strings.TrimSpace(claims.ExternalID)

	user, err := s.userRepo.GetUserByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserAbsent) {
		return nil, err
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, ErrMissingEmail
	}

	for _, username := range usernameCandidates(claims.Username, email, externalID) {
		candidate := &model.User{
			ExternalID:     externalID,
			Email:          email,
			FirstName:      claims.FirstName,
			LastName:       claims.LastName,
			Username:       username,
			ProfilePicture: claims.ProfilePicture,
			Role:           model.RoleUser,
			Status:         model.UserStatusActive,
		}

		created, err := s.userRepo.CreateUserIfAbsent(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if created {
			log.InfoContext(ctx, "user created on first sight", "external_id", externalID, "user_id", candidate.ID)
			return candidate, nil
		}

		// 冲突可能来自 external_id，也可能来自用户名
		existing, err := s.userRepo.GetUserByExternalID(ctx, externalID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrUserAbsent) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: no free username for %s", ErrUsernameTaken, externalID)
}

// Sync HTTP 同步入口，首次出现时优先使用身份提供方的资料
func (s *identityServiceImpl) Sync(ctx context.Context, tokenClaims *identity.Claims) (*model.User, error) {
	if tokenClaims == nil || tokenClaims.ExternalID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetUserByExternalID(ctx, tokenClaims.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserAbsent) {
		return nil, err
	}

	claims := tokenClaims
	if s.provider != nil {
		fetched, err := s.provider.GetUser(ctx, tokenClaims.ExternalID)
		if err != nil {
			log.WarnContext(ctx, "identity provider lookup failed, using token claims", "external_id", tokenClaims.ExternalID, "err", err)
		} else {
			claims = mergeClaims(fetched, tokenClaims)
		}
	}
	return s.Resolve(ctx, claims)
}

// Refresh 用户资料变更事件，用户不存在时先创建
func (s *identityServiceImpl) Refresh(ctx context.Context, claims *identity.Claims) (*model.User, error) {
	if claims == nil || claims.ExternalID == "" {
		return nil, ErrParamInvalid
	}

	existed := true
	if _, err := s.userRepo.GetUserByExternalID(ctx, claims.ExternalID); errors.Is(err, repository.ErrUserAbsent) {
		existed = false
	} else if err != nil {
		return nil, err
	}

	user, err := s.Resolve(ctx, claims)
	if err != nil || !existed {
		return user, err
	}

	// 事件里缺省的字段保留库中原值
	fields := make(map[string]interface{}, 4)
	for column, value := range map[string]string{
		"email":           claims.Email,
		"first_name":      claims.FirstName,
		"last_name":       claims.LastName,
		"profile_picture": claims.ProfilePicture,
	} {
		if value != "" {
			fields[column] = value
		}
	}
	if err = s.userRepo.UpdateProfile(ctx, user.ID, fields); err != nil {
		return nil, translateRepoErr(err)
	}
	return s.GetByExternalID(ctx, claims.ExternalID)
}

// mergeClaims 以 primary 为准，空字段用 fallback 补齐
func mergeClaims(primary, fallback *identity.Claims) *identity.Claims {
	merged := *primary
	merged.ExternalID = fallback.ExternalID
	pick := func(dst *string, alt string) {
		if *dst == "" {
			*dst = alt
		}
	}
	pick(&merged.Email, fallback.Email)
	pick(&merged.FirstName, fallback.FirstName)
	pick(&merged.LastName, fallback.LastName)
	pick(&merged.Username, fallback.Username)
	pick(&merged.ProfilePicture, fallback.ProfilePicture)
	return &merged
}

// usernameCandidates 依次尝试：身份方给出的用户名、邮箱前缀、前缀加外部 ID 短哈希
func usernameCandidates(preferred, email, externalID string) []string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	base := normalizeUsername(local)
	if base == "" {
		base = "user"
	}

	var candidates []string
	if p := normalizeUsername(preferred); len(p) >= 3 {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, base)

	suffixed := clip(base, maxUsernameLen-9) + "_" + util.ShortHash(externalID)
	candidates = append(candidates, suffixed)
	for i := 2; i <= 4; i++ {
		candidates = append(candidates, fmt.Sprintf("%s%d", clip(suffixed, maxUsernameLen-1), i))
	}
	return candidates
}

func normalizeUsername(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-') {
			b.WriteRune(r)
		}
	}
	return clip(b.String(), maxUsernameLen)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
