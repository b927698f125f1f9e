package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ichi1107/bento-order-system/config"
	"github.com/ichi1107/bento-order-system/middleware"
	"github.com/ichi1107/bento-order-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleByName(t *testing.T, name string) *models.Role {
	t.Helper()
	var role models.Role
	require.NoError(t, config.DB.Where("name = ?", name).First(&role).Error)
	return &role
}

func assignmentCount(t *testing.T, userID, roleID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&models.RoleAssignment{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).Count(&count).Error)
	return count
}

func TestGetStoreStaff(t *testing.T) {
	r := setupAPI(t)

	store := createStore(t, "Bento Ichi")
	rivalStore := createStore(t, "Bento Ni")
	owner := createStaff(t, "owner1", store.ID, models.RoleNameOwner)
	createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	createStaff(t, "rival1", rivalStore.ID, models.RoleNameOwner)
	createCustomer(t, "kenji")

	w := doJSON(t, r, http.MethodGet, "/api/store/staff", accessToken(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Staff []models.User `json:"staff"`
		Total int           `json:"total"`
	}
	decodeBody(t, w, &body)
	require.Equal(t, 2, body.Total, "only the caller's store staff appear")
	usernames := []string{body.Staff[0].Username, body.Staff[1].Username}
	assert.ElementsMatch(t, []string{"owner1", "staff1"}, usernames)
	for _, member := range body.Staff {
		assert.NotEmpty(t, member.Roles, "fine-grained roles are included")
	}

	t.Run("managers cannot administer staff", func(t *testing.T) {
		manager := createStaff(t, "manager1", store.ID, models.RoleNameManager)
		w := doJSON(t, r, http.MethodGet, "/api/store/staff", accessToken(t, manager), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), middleware.ForbiddenMessage)
	})
}

func TestAssignStaffRole(t *testing.T) {
	r := setupAPI(t)

	store := createStore(t, "Bento Ichi")
	rivalStore := createStore(t, "Bento Ni")
	owner := createStaff(t, "owner1", store.ID, models.RoleNameOwner)
	staffer := createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	rival := createStaff(t, "rival1", rivalStore.ID, models.RoleNameStaff)
	customer := createCustomer(t, "kenji")

	managerRole := roleByName(t, models.RoleNameManager)
	token := accessToken(t, owner)

	t.Run("grant and idempotent re-grant", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"user_id": staffer.ID, "role_id": managerRole.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Role assigned successfully")
		assert.EqualValues(t, 1, assignmentCount(t, staffer.ID, managerRole.ID))

		w = doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"user_id": staffer.ID, "role_id": managerRole.ID,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, assignmentCount(t, staffer.ID, managerRole.ID), "no duplicate rows")
	})

	t.Run("newly granted role takes effect on the next request", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/menus", accessToken(t, staffer), map[string]interface{}{
			"name": "Promoted Bento", "price": 500,
		})
		assert.Equal(t, http.StatusCreated, w.Code, "staffer now holds the manager role")
	})

	t.Run("customers are not staff", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"user_id": customer.ID, "role_id": managerRole.ID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("another store's staff cannot be granted roles", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"user_id": rival.ID, "role_id": managerRole.ID,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"user_id": staffer.ID, "role_id": 99999,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Role not found")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/store/staff/roles", token, map[string]uint{
			"role_id": managerRole.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRevokeStaffRole(t *testing.T) {
	r := setupAPI(t)

	store := createStore(t, "Bento Ichi")
	rivalStore := createStore(t, "Bento Ni")
	owner := createStaff(t, "owner1", store.ID, models.RoleNameOwner)
	staffer := createStaff(t, "staff1", store.ID, models.RoleNameStaff)
	rival := createStaff(t, "rival1", rivalStore.ID, models.RoleNameStaff)

	staffRole := roleByName(t, models.RoleNameStaff)
	token := accessToken(t, owner)

	revoke := func(userID, roleID uint) *struct {
		code int
		body string
	} {
		w := doJSON(t, r, http.MethodDelete,
			fmt.Sprintf("/api/store/staff/%d/roles/%d", userID, roleID), token, nil)
		return &struct {
			code int
			body string
		}{w.Code, w.Body.String()}
	}

	t.Run("revoke existing role", func(t *testing.T) {
		res := revoke(staffer.ID, staffRole.ID)
		require.Equal(t, http.StatusOK, res.code, res.body)
		assert.Contains(t, res.body, "Role revoked successfully")
		assert.EqualValues(t, 0, assignmentCount(t, staffer.ID, staffRole.ID))
	})

	t.Run("revoking twice is not found", func(t *testing.T) {
		res := revoke(staffer.ID, staffRole.ID)
		assert.Equal(t, http.StatusNotFound, res.code)
		assert.Contains(t, res.body, "Role assignment not found")
	})

	t.Run("another store's staff is not found", func(t *testing.T) {
		res := revoke(rival.ID, staffRole.ID)
		assert.Equal(t, http.StatusNotFound, res.code)
		assert.EqualValues(t, 1, assignmentCount(t, rival.ID, staffRole.ID), "rival assignment untouched")
	})
}
