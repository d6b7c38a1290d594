package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/identity"
	"Newsroom/internal/pkg/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CreatesOnce(t *testing.T) {
	env := newTestEnv(t)
	claims := &identity.Claims{ExternalID: "user_1", Email: "alice@example.com", FirstName: "Alice"}

	first, err := env.identity.Resolve(t.Context(), claims)
	require.NoError(t, err)
	second, err := env.identity.Resolve(t.Context(), claims)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, model.RoleUser, first.Role)
	assert.Equal(t, model.UserStatusActive, first.Status)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Where("external_id = ?", "user_1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolve_MissingEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.identity.Resolve(t.Context(), &identity.Claims{ExternalID: "user_1"})
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.True(t, IsInvalidInput(err))

	_, err = env.identity.Resolve(t.Context(), &identity.Claims{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestResolve_UsernameFallback(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustUser(t, "user_a", "sam@example.com")
	b := env.mustUser(t, "user_b", "sam@another.org")

	assert.Equal(t, "sam", a.Username)
	assert.Equal(t, "sam_"+util.ShortHash("user_b"), b.Username)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolve_PreferredUsername(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identity.Resolve(t.Context(), &identity.Claims{
		ExternalID: "user_1",
		Email:      "x@example.com",
		Username:   "Newshound",
	})
	require.NoError(t, err)
	assert.Equal(t, "newshound", user.Username)
}

func TestSync_UsesProviderProfile(t *testing.T) {
	env := newTestEnv(t)
	env.provider.claims["user_1"] = &identity.Claims{
		ExternalID:     "user_1",
		Email:          "real@example.com",
		FirstName:      "Real",
		ProfilePicture: "https://img.example.com/a.png",
	}

	user, err := env.identity.Sync(t.Context(), &identity.Claims{ExternalID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, "real@example.com", user.Email)
	assert.Equal(t, "Real", user.FirstName)
	assert.Equal(t, 1, env.provider.calls)

	again, err := env.identity.Sync(t.Context(), &identity.Claims{ExternalID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 1, env.provider.calls)
}

func TestSync_ProviderMissFallsBackToToken(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identity.Sync(t.Context(), &identity.Claims{ExternalID: "user_2", Email: "tok@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok@example.com", user.Email)

	_, err = env.identity.Sync(t.Context(), &identity.Claims{ExternalID: "user_3"})
	assert.ErrorIs(t, err, ErrMissingEmail)

	_, err = env.identity.Sync(t.Context(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_UpdatesProfile(t *testing.T) {
	env := newTestEnv(t)
	created := env.mustUser(t, "user_1", "old@example.com")

	updated, err := env.identity.Refresh(t.Context(), &identity.Claims{
		ExternalID: "user_1",
		Email:      "new@example.com",
		FirstName:  "New",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, created.Username, updated.Username)
}

func TestRefresh_KeepsFieldsMissingFromEvent(t *testing.T) {
	env := newTestEnv(t)
	created := env.mustUser(t, "user_1", "old@example.com")
	require.NoError(t, env.userRepo.UpdateProfile(t.Context(), created.ID, map[string]interface{}{
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"profile_picture": "avatars/ada.png",
	}))

	updated, err := env.identity.Refresh(t.Context(), &identity.Claims{
		ExternalID: "user_1",
		LastName:   "King",
	})
	require.NoError(t, err)
	assert.Equal(t, "old@example.com", updated.Email)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "King", updated.LastName)
	assert.Equal(t, "avatars/ada.png", updated.ProfilePicture)
}

func TestRefresh_CreatesUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identity.Refresh(t.Context(), &identity.Claims{ExternalID: "late", Email: "late@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := env.identity.GetByExternalID(t.Context(), "late")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = env.identity.GetByExternalID(t.Context(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUsernameCandidates(t *testing.T) {
	got := usernameCandidates("", "John.Doe+tag@example.com", "ext")
	require.Len(t, got, 5)
	assert.Equal(t, "john.doetag", got[0])
	assert.Equal(t, "john.doetag_"+util.ShortHash("ext"), got[1])
	assert.Equal(t, got[1]+"2", got[2])

	got = usernameCandidates("", "@example.com", "ext")
	assert.Equal(t, "user", got[0])

	for _, c := range usernameCandidates("", "averyveryveryveryverylonglocalpart@example.com", "ext") {
		assert.LessOrEqual(t, len(c), maxUsernameLen)
	}
}
