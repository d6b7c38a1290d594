package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	user := env.mustUser(t, "ext_u", "u@example.com")

	_, err := env.admin.UpdateUserRole(t.Context(), admin.ID, user.ID, "overlord")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = env.admin.UpdateUserRole(t.Context(), admin.ID, admin.ID, model.RoleUser)
	assert.ErrorIs(t, err, ErrOperateSelf)

	_, err = env.admin.UpdateUserRole(t.Context(), admin.ID, 404, model.RoleWriter)
	assert.ErrorIs(t, err, ErrUserNotFound)

	updated, err := env.admin.UpdateUserRole(t.Context(), admin.ID, user.ID, model.RoleWriter)
	require.NoError(t, err)
	assert.Equal(t, model.RoleWriter, updated.Role)

	stored, err := env.userRepo.GetUserByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleWriter, stored.Role)

	require.Len(t, env.adminLog.entries, 1)
	entry := env.adminLog.entries[0]
	assert.Equal(t, ActionUserRole, entry.Action)
	assert.Equal(t, admin.ID, entry.AdminID)
	assert.Equal(t, user.ID, entry.TargetID)
	assert.Equal(t, model.RoleUser, entry.Detail["from"])
}

func TestUpdateUserStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	user := env.mustUser(t, "ext_u", "u@example.com")

	_, err := env.admin.UpdateUserStatus(t.Context(), admin.ID, user.ID, "deleted")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := env.admin.UpdateUserStatus(t.Context(), admin.ID, user.ID, model.UserStatusBanned)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusBanned, updated.Status)
}

func TestAdminDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	user := env.mustUser(t, "ext_u", "u@example.com")

	_, err := env.admin.DeleteUser(t.Context(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrOperateSelf)

	_, err = env.admin.DeleteUser(t.Context(), admin.ID, user.ID)
	require.NoError(t, err)
	_, err = env.userRepo.GetUserByID(t.Context(), user.ID)
	assert.Error(t, err)
	require.Len(t, env.adminLog.entries, 1)
	assert.Equal(t, ActionUserDelete, env.adminLog.entries[0].Action)
}

func TestAdminLogFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.adminLog.err = errAssetDown
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	user := env.mustUser(t, "ext_u", "u@example.com")

	_, err := env.admin.UpdateUserStatus(t.Context(), admin.ID, user.ID, model.UserStatusSuspended)
	assert.NoError(t, err)
}

func TestListUsersAndLogs(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	env.mustUser(t, "ext_1", "carol@example.com")
	env.mustUser(t, "ext_2", "dave@example.com")

	page, err := env.admin.ListUsers(t.Context(), "carol", util.NormalizePage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "carol", page.Items[0].Username)

	all, err := env.admin.ListUsers(t.Context(), "", util.NormalizePage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.TotalCount)

	_, err = env.admin.RecountAll(t.Context(), admin.ID)
	require.NoError(t, err)
	_, err = env.admin.CleanupOrphans(t.Context(), admin.ID)
	require.NoError(t, err)

	logs, err := env.admin.ListLogs(t.Context(), ActionRecountAll, util.NormalizePage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, logs.TotalCount)

	logs, err = env.admin.ListLogs(t.Context(), "", util.NormalizePage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, logs.TotalCount)
}

func TestReports(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	reporter := env.mustUser(t, "ext_r", "r@example.com")
	news := env.mustNews(t, "offensive")

	_, err := env.report.CreateReport(t.Context(), reporter.ID, &dto.CreateReportDTO{TargetType: "planet", TargetID: 1, Reason: "x"})
	assert.ErrorIs(t, err, ErrInvalidReportTarget)

	_, err = env.report.CreateReport(t.Context(), reporter.ID, &dto.CreateReportDTO{TargetType: model.ReportTargetComment, TargetID: 404, Reason: "x"})
	assert.ErrorIs(t, err, ErrReportTargetNotFound)

	_, err = env.report.CreateReport(t.Context(), reporter.ID, &dto.CreateReportDTO{TargetType: model.ReportTargetNews, TargetID: news.ID, Reason: "   "})
	assert.ErrorIs(t, err, ErrParamInvalid)

	created, err := env.report.CreateReport(t.Context(), reporter.ID, &dto.CreateReportDTO{
		TargetType: model.ReportTargetNews,
		TargetID:   news.ID,
		Reason:     "spam",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusPending, created.Status)

	pending, err := env.admin.ListReports(t.Context(), model.ReportStatusPending, util.NormalizePage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.TotalCount)

	_, err = env.admin.ResolveReport(t.Context(), admin.ID, created.ID, model.ReportStatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	resolved, err := env.admin.ResolveReport(t.Context(), admin.ID, created.ID, model.ReportStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, admin.ID, *resolved.ResolvedBy)

	_, err = env.admin.ResolveReport(t.Context(), admin.ID, 404, model.ReportStatusDismissed)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = env.admin.ListReports(t.Context(), "weird", util.NormalizePage(1, 10))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
